package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (req *CreateDepartmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Code, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	HodID       *uint  `json:"hod_id"`
}

func (req *UpdateDepartmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Code, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}
