package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type DonationRequest struct {
	IDCard     string `json:"id_card"`
	Name       string `json:"name"`
	Sex        string `json:"sex"`
	Address    string `json:"address"`
	Birthday   string `json:"birthday"`
	FamilyID   string `json:"family_id"`
	CampaignID uint   `json:"campaign_id"`
	Amount     int64  `json:"amount"`
	Memo       string `json:"memo"`
}

func (req *DonationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IDCard, validation.Required, validation.Match(idCardPattern)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Sex, validation.Required, validation.In("男", "女")),
		validation.Field(&req.Address, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Birthday, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.CampaignID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Amount, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.FamilyID, validation.Match(idCardPattern)),
		validation.Field(&req.Memo, validation.Length(0, 500)),
	)
}

type FamilyDonationRequest struct {
	IDCard     string `json:"id_card"`
	CampaignID uint   `json:"campaign_id"`
	Amount     int64  `json:"amount"`
	Memo       string `json:"memo"`
}

func (req *FamilyDonationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IDCard, validation.Required, validation.Match(idCardPattern)),
		validation.Field(&req.CampaignID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Amount, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Memo, validation.Length(0, 500)),
	)
}
