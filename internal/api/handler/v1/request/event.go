package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date" format:"YYYY-MM-DD"`
	Time            string `json:"time"`
	Venue           string `json:"venue"`
	MaxParticipants int    `json:"max_participants"`
	Department      string `json:"department"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(2, 2000)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Venue, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
	)
}

type UpdateEventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date" format:"YYYY-MM-DD"`
	Time            string `json:"time"`
	Venue           string `json:"venue"`
	MaxParticipants int    `json:"max_participants"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(2, 2000)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Venue, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
	)
}

type ChangeEventStatusRequest struct {
	Status string `json:"status"`
}

func (req *ChangeEventStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("Approved", "Rejected")),
	)
}
