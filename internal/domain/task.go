package domain

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

// Task is a volunteer assignment tied to an event. Status is freely settable
// between the three values; there is no enforced ordering.
type Task struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	EventID        uint       `json:"event_id"`
	EventTitle     string     `json:"event_title"`
	AssignedTo     uint       `json:"assigned_to"`
	AssignedToName string     `json:"assigned_to_name"`
	DueDate        time.Time  `json:"due_date"`
	Status         TaskStatus `json:"status"`
	CreatedBy      uint       `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}

	return false
}
