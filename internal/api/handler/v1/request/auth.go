package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type LoginRequest struct {
	IDCard   string `json:"id_card"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IDCard, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
