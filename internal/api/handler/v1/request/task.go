package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventID     uint   `json:"event_id"`
	AssignedTo  uint   `json:"assigned_to"`
	DueDate     string `json:"due_date" format:"YYYY-MM-DD"`
	Status      string `json:"status"`
}

func (req *CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(2, 2000)),
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.AssignedTo, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.DueDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Status, validation.In("Pending", "In Progress", "Completed")),
	)
}

type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  uint   `json:"assigned_to"`
	DueDate     string `json:"due_date" format:"YYYY-MM-DD"`
	Status      string `json:"status"`
}

func (req *UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(2, 2000)),
		validation.Field(&req.AssignedTo, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.DueDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Status, validation.Required, validation.In("Pending", "In Progress", "Completed")),
	)
}

type SetTaskStatusRequest struct {
	Status string `json:"status"`
}

func (req *SetTaskStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("Pending", "In Progress", "Completed")),
	)
}
