package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/response"
	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/service"
)

type stubDonationService struct {
	recordErr error
	donation  domain.Donation
	campaign  domain.Campaign
}

func (s *stubDonationService) RecordDonation(context.Context, domain.Participant, uint, int64, string) (domain.Donation, error) {
	if s.recordErr != nil {
		return domain.Donation{}, s.recordErr
	}
	return s.donation, nil
}

func (s *stubDonationService) DeleteDonation(context.Context, uint) error { return nil }

func (s *stubDonationService) ListDonations(context.Context, *uint) ([]domain.Donation, error) {
	return nil, nil
}

func (s *stubDonationService) DonationsByParticipant(context.Context, string) ([]domain.Donation, error) {
	return nil, nil
}

func (s *stubDonationService) CurrentCampaign(context.Context) (domain.Campaign, error) {
	return s.campaign, nil
}

func (s *stubDonationService) GetCampaign(context.Context, uint) (domain.Campaign, error) {
	return s.campaign, nil
}

func (s *stubDonationService) CreateCampaign(context.Context, string, int64) (domain.Campaign, error) {
	return s.campaign, nil
}

func (s *stubDonationService) ListCampaigns(context.Context) ([]domain.Campaign, error) {
	return nil, nil
}

func postDonation(t *testing.T, svc DonationService, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/donations", NewDonationHandler(svc).HandleRecordDonation)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/donations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func validDonationBody() map[string]any {
	return map[string]any{
		"id_card":     "A123456789",
		"name":        "陳大文",
		"sex":         "男",
		"address":     "台北市中正區",
		"birthday":    "1980-01-01",
		"campaign_id": 1,
		"amount":      500,
	}
}

func TestDonationHandler_HandleRecordDonation(t *testing.T) {
	t.Run("success returns the donation with payment instructions", func(t *testing.T) {
		svc := &stubDonationService{
			donation: domain.Donation{ID: 1, Amount: 500},
			campaign: domain.Campaign{ID: 1, RemainingBalance: 9500},
		}

		recorder := postDonation(t, svc, validDonationBody())

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp response.DonationResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, int64(500), resp.Donation.Amount)
		assert.Equal(t, int64(9500), resp.RemainingBalance)
		assert.NotEmpty(t, resp.PaymentInstructions)
	})

	t.Run("insufficient funds maps to 422", func(t *testing.T) {
		svc := &stubDonationService{recordErr: service.ErrInsufficientFunds}

		recorder := postDonation(t, svc, validDonationBody())

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("unknown campaign maps to 404", func(t *testing.T) {
		svc := &stubDonationService{recordErr: service.ErrCampaignNotFound}

		recorder := postDonation(t, svc, validDonationBody())

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid body is rejected before the service runs", func(t *testing.T) {
		body := validDonationBody()
		body["amount"] = 0
		svc := &stubDonationService{recordErr: service.ErrInsufficientFunds}

		recorder := postDonation(t, svc, body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
