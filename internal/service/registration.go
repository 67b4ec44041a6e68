package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository"
)

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrEventNotFound       = repository.ErrEventNotFound
	ErrMissingAgentName    = errors.New("agent name is required when delegating")
	ErrInvalidStatus       = errors.New("invalid participation status")
)

type RegistrationParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByIDCard(ctx context.Context, idCard string) (domain.Participant, error)
	FindByFamilyID(ctx context.Context, familyID string) ([]domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) (domain.Participant, error)
}

type RegistrationEventRepository interface {
	FindLatest(ctx context.Context) (domain.Event, error)
}

type RegistrationService struct {
	repo      RegistrationParticipantRepository
	eventRepo RegistrationEventRepository
}

func NewRegistrationService(repo RegistrationParticipantRepository, eventRepo RegistrationEventRepository) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func validateParticipation(status domain.ParticipationStatus, agentName string) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if status == domain.StatusAgent && agentName == "" {
		return ErrMissingAgentName
	}
	return nil
}

// Register upserts a participant against the event current at submit
// time. An already-registered id card is not an error: it becomes an
// update of the same row. Either way the row re-attaches to the latest
// event, never the one shown when the form was opened.
func (s *RegistrationService) Register(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	if err := validateParticipation(participant.Status, participant.AgentName); err != nil {
		return domain.Participant{}, err
	}
	participant.ApplyStatus(participant.Status, participant.AgentName)

	event, err := s.eventRepo.FindLatest(ctx)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.eventRepo.FindLatest -> %w", err)
	}
	participant.EventID = &event.ID
	participant.AdminViewed = false

	_, err = s.repo.FindByIDCard(ctx, participant.IDCard)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			created, createErr := s.repo.Create(ctx, participant)
			if createErr != nil {
				// Lost a create race: another request inserted the
				// same id card first, so fall through to the update.
				if errors.Is(createErr, repository.ErrIDCardExists) {
					return s.update(ctx, participant)
				}
				return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", createErr)
			}
			return created, nil
		}
		return domain.Participant{}, fmt.Errorf("s.repo.FindByIDCard -> %w", err)
	}

	return s.update(ctx, participant)
}

func (s *RegistrationService) update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	return updated, nil
}

func (s *RegistrationService) Lookup(ctx context.Context, idCard string) (domain.Participant, error) {
	participant, err := s.repo.FindByIDCard(ctx, idCard)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}
		return domain.Participant{}, fmt.Errorf("s.repo.FindByIDCard -> %w", err)
	}

	return participant, nil
}

// FamilyMembers returns every participant sharing the representative's
// group key, excluding the representative's own row. A representative
// with no family gets an empty list, which is expected, not an error.
func (s *RegistrationService) FamilyMembers(ctx context.Context, idCard string) ([]domain.Participant, error) {
	representative, err := s.Lookup(ctx, idCard)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.FindByFamilyID(ctx, representative.GroupKey())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByFamilyID -> %w", err)
	}

	others := make([]domain.Participant, 0, len(members))
	self := domain.NormalizeIDCard(idCard)
	for _, m := range members {
		if m.IDCard != self {
			others = append(others, m)
		}
	}

	return others, nil
}

// UpdateMember edits an existing row (self or family member). Same
// validation and latest-event re-attachment as Register, but the row
// must already exist.
func (s *RegistrationService) UpdateMember(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	if err := validateParticipation(participant.Status, participant.AgentName); err != nil {
		return domain.Participant{}, err
	}
	participant.ApplyStatus(participant.Status, participant.AgentName)

	event, err := s.eventRepo.FindLatest(ctx)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.eventRepo.FindLatest -> %w", err)
	}
	participant.EventID = &event.ID
	participant.AdminViewed = false

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
