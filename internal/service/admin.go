package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository"
)

var ErrNoEditableFields = errors.New("no editable fields in request")

type AdminParticipantRepository interface {
	FindByIDCard(ctx context.Context, idCard string) (domain.Participant, error)
	UpdateAdminFields(ctx context.Context, idCard string, fields map[string]interface{}) (domain.Participant, error)
	List(ctx context.Context, eventID *uint) ([]domain.Participant, error)
	Delete(ctx context.Context, idCard string) error
}

type AdminEventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
}

type AdminService struct {
	repo      AdminParticipantRepository
	eventRepo AdminEventRepository
}

func NewAdminService(repo AdminParticipantRepository, eventRepo AdminEventRepository) *AdminService {
	return &AdminService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *AdminService) ListParticipants(ctx context.Context, eventID *uint) ([]domain.Participant, error) {
	participants, err := s.repo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return participants, nil
}

// ParticipantEdit carries the admin inline edits; nil means "leave
// unchanged".
type ParticipantEdit struct {
	PayStatus   *string
	AdminViewed *bool
	Role        *string
	Password    *string
}

func (s *AdminService) UpdateParticipant(ctx context.Context, idCard string, edit ParticipantEdit) (domain.Participant, error) {
	fields := map[string]interface{}{}
	if edit.PayStatus != nil {
		fields["pay_status"] = *edit.PayStatus
	}
	if edit.AdminViewed != nil {
		fields["admin_viewed"] = *edit.AdminViewed
	}
	if edit.Role != nil {
		fields["role"] = *edit.Role
	}
	if edit.Password != nil {
		hash, err := HashPassword(*edit.Password)
		if err != nil {
			return domain.Participant{}, fmt.Errorf("service.HashPassword -> %w", err)
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		return domain.Participant{}, ErrNoEditableFields
	}

	updated, err := s.repo.UpdateAdminFields(ctx, idCard, fields)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}
		return domain.Participant{}, fmt.Errorf("s.repo.UpdateAdminFields -> %w", err)
	}

	return updated, nil
}

func (s *AdminService) DeleteParticipant(ctx context.Context, idCard string) error {
	if err := s.repo.Delete(ctx, idCard); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *AdminService) CreateEvent(ctx context.Context, title string) (domain.Event, error) {
	event, err := s.eventRepo.Create(ctx, domain.Event{
		Title: title,
		Code:  fmt.Sprintf("event_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.eventRepo.Create -> %w", err)
	}

	return event, nil
}

func (s *AdminService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindAll -> %w", err)
	}

	return events, nil
}
