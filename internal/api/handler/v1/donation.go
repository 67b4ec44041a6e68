package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/request"
	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/response"
	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/service"
)

// paymentInstructions is shown to donors after a successful donation;
// transfers themselves are settled outside the system.
const paymentInstructions = "感謝您的捐款。請於三日內完成匯款：戶名 萬福宮管理委員會，並於備註欄註明捐款人身分證字號。"

type DonationService interface {
	RecordDonation(ctx context.Context, donor domain.Participant, campaignID uint, amount int64, memo string) (domain.Donation, error)
	DeleteDonation(ctx context.Context, donationID uint) error
	ListDonations(ctx context.Context, campaignID *uint) ([]domain.Donation, error)
	DonationsByParticipant(ctx context.Context, idCard string) ([]domain.Donation, error)
	CurrentCampaign(ctx context.Context) (domain.Campaign, error)
	GetCampaign(ctx context.Context, id uint) (domain.Campaign, error)
	CreateCampaign(ctx context.Context, title string, allocation int64) (domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
}

type DonationHandler struct {
	svc DonationService
}

func NewDonationHandler(svc DonationService) *DonationHandler {
	return &DonationHandler{
		svc: svc,
	}
}

// HandleRecordDonation godoc
// @Summary      Record a donation against a campaign
// @Tags         donations
// @Produce      json
// @Param        request   body      request.DonationRequest true "request body"
// @Success      200      {object}   response.DonationResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /donations [post]
func (h *DonationHandler) HandleRecordDonation(ctx *gin.Context) {
	var req request.DonationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donor := domain.Participant{
		IDCard:   req.IDCard,
		Name:     req.Name,
		Sex:      req.Sex,
		Address:  req.Address,
		Birthday: req.Birthday,
		FamilyID: req.FamilyID,
	}

	donation, err := h.svc.RecordDonation(ctx.Request.Context(), donor, req.CampaignID, req.Amount, req.Memo)
	if err != nil {
		h.renderDonationErr(ctx, "HandleRecordDonation", err)
		return
	}

	h.renderDonationResponse(ctx, donation, req.CampaignID)
}

// HandleFamilyDonation godoc
// @Summary      Record a donation on behalf of an already registered family member
// @Tags         donations
// @Produce      json
// @Param        request   body      request.FamilyDonationRequest true "request body"
// @Success      200      {object}   response.DonationResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /donations/family [post]
func (h *DonationHandler) HandleFamilyDonation(ctx *gin.Context) {
	var req request.FamilyDonationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Only the id card is supplied; the donor must already exist, so
	// the service's lookup path finds the full row.
	donor := domain.Participant{IDCard: req.IDCard}

	donation, err := h.svc.RecordDonation(ctx.Request.Context(), donor, req.CampaignID, req.Amount, req.Memo)
	if err != nil {
		h.renderDonationErr(ctx, "HandleFamilyDonation", err)
		return
	}

	h.renderDonationResponse(ctx, donation, req.CampaignID)
}

func (h *DonationHandler) renderDonationErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrCampaignNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
	case errors.Is(err, service.ErrInsufficientFunds):
		response.RenderErr(ctx, response.ErrUnprocessableEntity(service.ErrInsufficientFunds))
	default:
		err = fmt.Errorf("v1.%s -> h.svc.RecordDonation -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func (h *DonationHandler) renderDonationResponse(ctx *gin.Context, donation domain.Donation, campaignID uint) {
	remaining := int64(0)
	if campaign, err := h.svc.GetCampaign(ctx.Request.Context(), campaignID); err == nil {
		remaining = campaign.RemainingBalance
	}

	ctx.JSON(http.StatusOK, response.DonationResponse{
		Donation:            donation,
		RemainingBalance:    remaining,
		PaymentInstructions: paymentInstructions,
	})
}

// HandleDonationsByParticipant godoc
// @Summary      List a participant's own donations
// @Tags         donations
// @Produce      json
// @Param        idCard   path       string true "national ID"
// @Success      200      {array}    domain.Donation
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /donations/{idCard} [get]
func (h *DonationHandler) HandleDonationsByParticipant(ctx *gin.Context) {
	idCard := ctx.Param("idCard")

	donations, err := h.svc.DonationsByParticipant(ctx.Request.Context(), idCard)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDonationsByParticipant -> h.svc.DonationsByParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, donations)
}

// HandleCurrentCampaign godoc
// @Summary      Return the campaign currently open for donations
// @Tags         campaigns
// @Produce      json
// @Success      200      {object}   domain.Campaign
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /campaigns/current [get]
func (h *DonationHandler) HandleCurrentCampaign(ctx *gin.Context) {
	campaign, err := h.svc.CurrentCampaign(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleCurrentCampaign -> h.svc.CurrentCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleGetCampaign godoc
// @Summary      Return a campaign with its remaining balance
// @Tags         campaigns
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Success      200      {object}   domain.Campaign
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /campaigns/{campaignID} [get]
func (h *DonationHandler) HandleGetCampaign(ctx *gin.Context) {
	campaignID, err := strconv.ParseUint(ctx.Param("campaignID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.GetCampaign(ctx.Request.Context(), uint(campaignID))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetCampaign -> h.svc.GetCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleListDonations godoc
// @Summary      List donations, optionally filtered by campaign
// @Tags         admin
// @Produce      json
// @Param        campaign_id query    int false "campaign ID"
// @Success      200      {array}    domain.Donation
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/donations [get]
func (h *DonationHandler) HandleListDonations(ctx *gin.Context) {
	var campaignID *uint
	if raw := ctx.Query("campaign_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		id := uint(parsed)
		campaignID = &id
	}

	donations, err := h.svc.ListDonations(ctx.Request.Context(), campaignID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListDonations -> h.svc.ListDonations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, donations)
}

// HandleDeleteDonation godoc
// @Summary      Delete a donation and credit its amount back to the campaign
// @Tags         admin
// @Produce      json
// @Param        donationID path     int true "donation ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/donations/{donationID} [delete]
func (h *DonationHandler) HandleDeleteDonation(ctx *gin.Context) {
	donationID, err := strconv.ParseUint(ctx.Param("donationID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteDonation(ctx.Request.Context(), uint(donationID)); err != nil {
		if errors.Is(err, service.ErrDonationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDonationNotFound))
			return
		}
		if errors.Is(err, service.ErrNoCampaignRef) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNoCampaignRef))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteDonation -> h.svc.DeleteDonation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateCampaign godoc
// @Summary      Open a new fundraising campaign
// @Tags         admin
// @Produce      json
// @Param        request   body      request.CreateCampaignRequest true "request body"
// @Success      200      {object}   domain.Campaign
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/campaigns [post]
func (h *DonationHandler) HandleCreateCampaign(ctx *gin.Context) {
	var req request.CreateCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.CreateCampaign(ctx.Request.Context(), req.Title, req.Allocation)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCampaign -> h.svc.CreateCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleListCampaigns godoc
// @Summary      List all fundraising campaigns
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.Campaign
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/campaigns [get]
func (h *DonationHandler) HandleListCampaigns(ctx *gin.Context) {
	campaigns, err := h.svc.ListCampaigns(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCampaigns -> h.svc.ListCampaigns -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}
