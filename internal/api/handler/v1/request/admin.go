package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Title string `json:"title"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
	)
}

type CreateCampaignRequest struct {
	Title      string `json:"title"`
	Allocation int64  `json:"allocation"`
}

func (req *CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Allocation, validation.Required, validation.Min(int64(1))),
	)
}

// UpdateParticipantRequest carries the admin inline edits; absent
// fields stay untouched.
type UpdateParticipantRequest struct {
	PayStatus   *string `json:"pay_status"`
	AdminViewed *bool   `json:"admin_viewed"`
	Role        *string `json:"role"`
	Password    *string `json:"password"`
}

func (req *UpdateParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PayStatus, validation.In("paid", "unpaid")),
		validation.Field(&req.Role, validation.In("member", "admin")),
		validation.Field(&req.Password, validation.Length(8, 72)),
	)
}
