package domain

import "time"

// Donation is immutable once created; the only later mutation is an
// admin deletion, which must credit the amount back to the campaign.
type Donation struct {
	ID            uint   `json:"id"`
	ParticipantID uint   `json:"participant_id"`
	CampaignID    *uint  `json:"campaign_id"`
	Amount        int64  `json:"amount"`
	Memo          string `json:"memo"`

	// Denormalized for listing/export.
	IDCard        string `json:"id_card,omitempty"`
	Donor         string `json:"donor,omitempty"`
	Birthday      string `json:"birthday,omitempty"`
	Address       string `json:"address,omitempty"`
	CampaignTitle string `json:"campaign_title,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (d *Donation) IsValid() bool {
	return d.Amount > 0 && d.ParticipantID != 0
}
