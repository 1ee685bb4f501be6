package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository"
)

var (
	ErrEventNotFound      = repository.ErrEventNotFound
	ErrEventCompleted     = errors.New("event is already completed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDepartmentRequired = errors.New("event department is required")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByDepartment(ctx context.Context, department string) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) error
	Delete(ctx context.Context, id uint) error
}

type EventDepartmentRepository interface {
	FindByName(ctx context.Context, name string) (domain.Department, error)
}

type EventService struct {
	repo        EventRepository
	departments EventDepartmentRepository
	now         func() time.Time
}

func NewEventService(repo EventRepository, departments EventDepartmentRepository) *EventService {
	return &EventService{
		repo:        repo,
		departments: departments,
		now:         time.Now,
	}
}

// CreateEvent opens a new event in Pending. Faculty are bound to their own
// department; admins may create for any known department.
func (s *EventService) CreateEvent(ctx context.Context, actor domain.User, event domain.Event) (domain.Event, error) {
	if actor.Role != domain.RoleFaculty && !actor.IsAdmin() {
		return domain.Event{}, ErrForbidden
	}

	if actor.Role == domain.RoleFaculty {
		event.Department = actor.Department
	}
	if event.Department == "" {
		return domain.Event{}, ErrDepartmentRequired
	}

	if _, err := s.departments.FindByName(ctx, event.Department); err != nil {
		if errors.Is(err, repository.ErrDepartmentNotFound) {
			return domain.Event{}, ErrDepartmentNotFound
		}

		return domain.Event{}, fmt.Errorf("s.departments.FindByName -> %w", err)
	}

	event.Status = domain.EventPending
	event.CurrentParticipants = 0
	event.CreatedBy = actor.ID
	event.CreatedByName = actor.FullName()

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return s.withEffectiveStatus(event), nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range events {
		events[i] = s.withEffectiveStatus(events[i])
	}

	return events, nil
}

// ListPendingForReview is the HOD approval queue: pending events in the
// actor's department, or everything pending for admins.
func (s *EventService) ListPendingForReview(ctx context.Context, actor domain.User) ([]domain.Event, error) {
	if actor.Role != domain.RoleHOD && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var (
		events []domain.Event
		err    error
	)
	if actor.IsAdmin() {
		events, err = s.repo.FindAll(ctx)
	} else {
		events, err = s.repo.FindByDepartment(ctx, actor.Department)
	}
	if err != nil {
		return nil, fmt.Errorf("list events -> %w", err)
	}

	pending := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.Status == domain.EventPending {
			pending = append(pending, event)
		}
	}

	return pending, nil
}

// UpdateEvent edits event details. Only the creator or an admin may edit, and
// never after the event has completed.
func (s *EventService) UpdateEvent(ctx context.Context, actor domain.User, event domain.Event) (domain.Event, error) {
	current, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !canManageEvent(actor, current) {
		return domain.Event{}, ErrForbidden
	}
	if current.IsCompleted(s.now()) {
		return domain.Event{}, ErrEventCompleted
	}

	// Shrinking capacity below the registered headcount would break the
	// counter invariant.
	if event.MaxParticipants < current.CurrentParticipants {
		event.MaxParticipants = current.CurrentParticipants
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return s.withEffectiveStatus(updated), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor domain.User, id uint) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !canManageEvent(actor, event) {
		return ErrForbidden
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ChangeStatus drives the review state machine. Legal edges are
// Pending→Approved, Pending→Rejected, Rejected→Approved (re-review) and
// Approved→Rejected (revocation); the actor must be the HOD of the event's
// department or an admin, and the event date must not have passed.
func (s *EventService) ChangeStatus(ctx context.Context, actor domain.User, id uint, to domain.EventStatus) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !canReviewEvent(actor, event) {
		return domain.Event{}, ErrForbidden
	}
	if event.HasPassed(s.now()) {
		return domain.Event{}, ErrEventCompleted
	}
	if !event.CanTransition(to) {
		return domain.Event{}, ErrInvalidTransition
	}

	if err = s.repo.UpdateStatus(ctx, id, to); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	event.Status = to

	return event, nil
}

func (s *EventService) withEffectiveStatus(event domain.Event) domain.Event {
	event.Status = event.EffectiveStatus(s.now())

	return event
}
