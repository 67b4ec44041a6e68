package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/request"
	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/response"
	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/export"
	"github.com/wanfu-temple/temple-api/internal/service"
)

type AdminService interface {
	ListParticipants(ctx context.Context, eventID *uint) ([]domain.Participant, error)
	UpdateParticipant(ctx context.Context, idCard string, edit service.ParticipantEdit) (domain.Participant, error)
	DeleteParticipant(ctx context.Context, idCard string) error
	CreateEvent(ctx context.Context, title string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type AdminDonationService interface {
	ListDonations(ctx context.Context, campaignID *uint) ([]domain.Donation, error)
}

type AdminHandler struct {
	svc         AdminService
	donationSvc AdminDonationService
}

func NewAdminHandler(svc AdminService, donationSvc AdminDonationService) *AdminHandler {
	return &AdminHandler{
		svc:         svc,
		donationSvc: donationSvc,
	}
}

// HandleListParticipants godoc
// @Summary      List participants, optionally filtered by event
// @Tags         admin
// @Produce      json
// @Param        event_id query    int false "event ID"
// @Success      200      {array}    domain.Participant
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/participants [get]
func (h *AdminHandler) HandleListParticipants(ctx *gin.Context) {
	eventID, err := optionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// HandleUpdateParticipant godoc
// @Summary      Update a participant's administrative fields
// @Tags         admin
// @Produce      json
// @Param        idCard   path       string true "national ID"
// @Param        request  body       request.UpdateParticipantRequest true "request body"
// @Success      200      {object}   domain.Participant
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/participants/{idCard} [patch]
func (h *AdminHandler) HandleUpdateParticipant(ctx *gin.Context) {
	var req request.UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	edit := service.ParticipantEdit{
		PayStatus:   req.PayStatus,
		AdminViewed: req.AdminViewed,
		Role:        req.Role,
		Password:    req.Password,
	}

	participant, err := h.svc.UpdateParticipant(ctx.Request.Context(), ctx.Param("idCard"), edit)
	if err != nil {
		if errors.Is(err, service.ErrNoEditableFields) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateParticipant -> h.svc.UpdateParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participant)
}

// HandleDeleteParticipant godoc
// @Summary      Delete a participant
// @Tags         admin
// @Produce      json
// @Param        idCard   path       string true "national ID"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/participants/{idCard} [delete]
func (h *AdminHandler) HandleDeleteParticipant(ctx *gin.Context) {
	if err := h.svc.DeleteParticipant(ctx.Request.Context(), ctx.Param("idCard")); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParticipant -> h.svc.DeleteParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateEvent godoc
// @Summary      Open a new registration event
// @Tags         admin
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/events [post]
func (h *AdminHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), req.Title)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListEvents godoc
// @Summary      List all registration events
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.Event
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/events [get]
func (h *AdminHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleExportParticipants godoc
// @Summary      Export participants as an Excel workbook
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        event_id query    int false "event ID"
// @Success      200      {file}     binary
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/participants/export [get]
func (h *AdminHandler) HandleExportParticipants(ctx *gin.Context) {
	eventID, err := optionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportParticipants -> h.svc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	workbook, err := export.ParticipantsWorkbook(participants)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportParticipants -> export.ParticipantsWorkbook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	writeWorkbook(ctx, workbook, fmt.Sprintf("participants_%s.xlsx", time.Now().Format("20060102")))
}

// HandleExportDonations godoc
// @Summary      Export donations as an Excel workbook
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        campaign_id query    int false "campaign ID"
// @Success      200      {file}     binary
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /admin/donations/export [get]
func (h *AdminHandler) HandleExportDonations(ctx *gin.Context) {
	campaignID, err := optionalUintQuery(ctx, "campaign_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donations, err := h.donationSvc.ListDonations(ctx.Request.Context(), campaignID)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportDonations -> h.donationSvc.ListDonations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	workbook, err := export.DonationsWorkbook(donations)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportDonations -> export.DonationsWorkbook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	writeWorkbook(ctx, workbook, fmt.Sprintf("donations_%s.xlsx", time.Now().Format("20060102")))
}

func optionalUintQuery(ctx *gin.Context, name string) (*uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	id := uint(parsed)
	return &id, nil
}

func writeWorkbook(ctx *gin.Context, workbook *excelize.File, filename string) {
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := workbook.Write(ctx.Writer); err != nil {
		zap.L().Error("failed to stream workbook", zap.Error(err))
	}
}
