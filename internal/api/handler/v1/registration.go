package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/request"
	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/response"
	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/service"
)

type RegistrationService interface {
	Register(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	Lookup(ctx context.Context, idCard string) (domain.Participant, error)
	FamilyMembers(ctx context.Context, idCard string) ([]domain.Participant, error)
	UpdateMember(ctx context.Context, participant domain.Participant) (domain.Participant, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

func registrationToDomain(req request.RegistrationRequest) domain.Participant {
	return domain.Participant{
		IDCard:    req.IDCard,
		Name:      req.Name,
		Address:   req.Address,
		Birthday:  req.Birthday,
		Zodiac:    req.Zodiac,
		FamilyID:  req.FamilyID,
		EventDate: req.EventDate,
		Status:    domain.ParticipationStatus(req.Status),
		AgentName: req.AgentName,
		Role:      domain.RoleMember,
		PayStatus: domain.PayStatusUnpaid,
	}
}

// HandleRegister godoc
// @Summary      Register a participant for the current event
// @Tags         registrations
// @Produce      json
// @Param        request   body      request.RegistrationRequest true "request body"
// @Success      200      {object}   domain.Participant
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations [post]
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.svc.Register(ctx.Request.Context(), registrationToDomain(req))
	if err != nil {
		if errors.Is(err, service.ErrMissingAgentName) || errors.Is(err, service.ErrInvalidStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participant)
}

// HandleLookup godoc
// @Summary      Look up a participant by national ID
// @Tags         registrations
// @Produce      json
// @Param        idCard   path       string true "national ID"
// @Success      200      {object}   domain.Participant
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/{idCard} [get]
func (h *RegistrationHandler) HandleLookup(ctx *gin.Context) {
	idCard := ctx.Param("idCard")

	participant, err := h.svc.Lookup(ctx.Request.Context(), idCard)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleLookup -> h.svc.Lookup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participant)
}

// HandleFamilyMembers godoc
// @Summary      List family members sharing the representative's group key
// @Tags         registrations
// @Produce      json
// @Param        idCard   path       string true "national ID"
// @Success      200      {array}    domain.Participant
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/{idCard}/family [get]
func (h *RegistrationHandler) HandleFamilyMembers(ctx *gin.Context) {
	idCard := ctx.Param("idCard")

	members, err := h.svc.FamilyMembers(ctx.Request.Context(), idCard)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleFamilyMembers -> h.svc.FamilyMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleUpdate godoc
// @Summary      Update a registration (self or family member)
// @Tags         registrations
// @Produce      json
// @Param        idCard   path       string true "national ID"
// @Param        request  body       request.RegistrationRequest true "request body"
// @Success      200      {object}   domain.Participant
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/{idCard} [put]
func (h *RegistrationHandler) HandleUpdate(ctx *gin.Context) {
	var req request.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// The path parameter names the row being edited; the body's
	// id_card is ignored to stop one family member's form from
	// silently renaming another's key.
	req.IDCard = ctx.Param("idCard")

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.svc.UpdateMember(ctx.Request.Context(), registrationToDomain(req))
	if err != nil {
		if errors.Is(err, service.ErrMissingAgentName) || errors.Is(err, service.ErrInvalidStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdate -> h.svc.UpdateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participant)
}
