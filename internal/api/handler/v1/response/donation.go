package response

import "github.com/wanfu-temple/temple-api/internal/domain"

type DonationResponse struct {
	Donation         domain.Donation `json:"donation"`
	RemainingBalance int64           `json:"remaining_balance"`
	// Transfers are settled off-system; the client shows these
	// instructions after a successful donation.
	PaymentInstructions string `json:"payment_instructions"`
}

type BalanceUpdate struct {
	CampaignID       uint  `json:"campaign_id"`
	RemainingBalance int64 `json:"remaining_balance"`
}
