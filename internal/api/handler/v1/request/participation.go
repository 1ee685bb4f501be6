package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// RegisterParticipationRequest omits StudentID for self-registration;
// staff registering on behalf of a student must set it.
type RegisterParticipationRequest struct {
	EventID   uint `json:"event_id"`
	StudentID uint `json:"student_id"`
}

func (req *RegisterParticipationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
	)
}

// SetAttendanceRequest maps participation IDs to a present flag.
type SetAttendanceRequest struct {
	Attendance map[uint]bool `json:"attendance"`
}

func (req *SetAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Attendance, validation.Required),
	)
}
