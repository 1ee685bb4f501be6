package domain

import (
	"time"
)

type ParticipationStatus string

const (
	ParticipationRegistered ParticipationStatus = "Registered"
	ParticipationAttended   ParticipationStatus = "Attended"
	ParticipationAbsent     ParticipationStatus = "Absent"
)

// Participation links one student to one event. Event title and student
// name/email are snapshots taken at registration time.
type Participation struct {
	ID           uint                `json:"id"`
	EventID      uint                `json:"event_id"`
	EventTitle   string              `json:"event_title"`
	StudentID    uint                `json:"student_id"`
	StudentName  string              `json:"student_name"`
	StudentEmail string              `json:"student_email"`
	Status       ParticipationStatus `json:"status"`
	RegisteredAt time.Time           `json:"registered_at"`
}

// AttendanceStatus maps a present/absent flag to the stored status.
func AttendanceStatus(present bool) ParticipationStatus {
	if present {
		return ParticipationAttended
	}

	return ParticipationAbsent
}
