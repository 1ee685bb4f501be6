package service

import (
	"errors"

	"github.com/collegehub/collegehub-api/internal/domain"
)

var ErrForbidden = errors.New("not allowed to perform this action")

// Department-scoped checks live here so handlers and services compose one
// guard instead of re-deriving role/department rules per endpoint.

// canReviewEvent gates approval and rejection: the HOD of the event's
// department, or an admin.
func canReviewEvent(actor domain.User, event domain.Event) bool {
	return actor.ManagesDepartment(event.Department)
}

// canManageEvent gates edits and deletion: the creator, or an admin.
func canManageEvent(actor domain.User, event domain.Event) bool {
	return actor.IsAdmin() || event.CreatedBy == actor.ID
}

// canCaptureAttendance gates the attendance batch and the report: the event's
// creator, the department HOD, or an admin.
func canCaptureAttendance(actor domain.User, event domain.Event) bool {
	if canManageEvent(actor, event) {
		return true
	}

	return actor.Role == domain.RoleHOD && actor.ManagesDepartment(event.Department)
}

// canManageTask gates task edits and deletion: the creating faculty member or
// an admin. Assignees get a narrower status-only path.
func canManageTask(actor domain.User, task domain.Task) bool {
	if actor.IsAdmin() {
		return true
	}

	return actor.Role == domain.RoleFaculty && task.CreatedBy == actor.ID
}
