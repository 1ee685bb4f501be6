package domain

import "time"

type EventStatus string

const (
	EventPending  EventStatus = "Pending"
	EventApproved EventStatus = "Approved"
	EventRejected EventStatus = "Rejected"

	// EventCompleted is never stored. It is the read-time label for an
	// approved event whose date has passed.
	EventCompleted EventStatus = "Completed"
)

type Event struct {
	ID                  uint        `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Date                time.Time   `json:"date"`
	Time                string      `json:"time"`
	Venue               string      `json:"venue"`
	MaxParticipants     int         `json:"max_participants"`
	CurrentParticipants int         `json:"current_participants"`
	Department          string      `json:"department"`
	Status              EventStatus `json:"status"`
	CreatedBy           uint        `json:"created_by"`
	CreatedByName       string      `json:"created_by_name"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// reviewTransitions are the legal stored-status edges. Rejected events can be
// re-reviewed and approvals revoked; there is no edge into or out of Completed
// because Completed only exists as a derived label.
var reviewTransitions = map[EventStatus][]EventStatus{
	EventPending:  {EventApproved, EventRejected},
	EventRejected: {EventApproved},
	EventApproved: {EventRejected},
}

func (e Event) CanTransition(to EventStatus) bool {
	for _, next := range reviewTransitions[e.Status] {
		if next == to {
			return true
		}
	}

	return false
}

// EffectiveStatus returns the status as shown to clients: an approved event
// whose date has passed reads as Completed.
func (e Event) EffectiveStatus(now time.Time) EventStatus {
	if e.Status == EventApproved && e.Date.Before(now) {
		return EventCompleted
	}

	return e.Status
}

func (e Event) IsCompleted(now time.Time) bool {
	return e.EffectiveStatus(now) == EventCompleted
}

// HasPassed reports whether the event's date is behind now, whatever the
// stored status. Past events are closed to review and editing.
func (e Event) HasPassed(now time.Time) bool {
	return e.Date.Before(now)
}

func (e Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}
