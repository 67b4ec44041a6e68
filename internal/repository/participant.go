package repository

import (
	"context"
	"fmt"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository/dao"
)

var (
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrIDCardExists        = dao.ErrIDCardExists
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByIDCard(ctx context.Context, idCard string) (dao.Participant, error)
	FindByFamilyID(ctx context.Context, familyID string) ([]dao.Participant, error)
	Update(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	UpdateAdminFields(ctx context.Context, idCard string, fields map[string]interface{}) (dao.Participant, error)
	List(ctx context.Context, eventID *uint) ([]dao.Participant, error)
	Delete(ctx context.Context, idCard string) error
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) domainToDao(p domain.Participant) dao.Participant {
	return dao.Participant{
		ID:          p.ID,
		IDCard:      domain.NormalizeIDCard(p.IDCard),
		Name:        p.Name,
		Sex:         p.Sex,
		Address:     p.Address,
		Birthday:    p.Birthday,
		Zodiac:      p.Zodiac,
		FamilyID:    p.GroupKey(),
		EventID:     p.EventID,
		EventDate:   p.EventDate,
		Status:      string(p.Status),
		AgentName:   p.AgentName,
		Memo:        p.Memo,
		Role:        p.Role,
		Password:    p.Password,
		PayStatus:   p.PayStatus,
		AdminViewed: p.AdminViewed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	participant := domain.Participant{
		ID:          p.ID,
		IDCard:      p.IDCard,
		Name:        p.Name,
		Sex:         p.Sex,
		Address:     p.Address,
		Birthday:    p.Birthday,
		Zodiac:      p.Zodiac,
		FamilyID:    p.FamilyID,
		EventID:     p.EventID,
		EventDate:   p.EventDate,
		Status:      domain.ParticipationStatus(p.Status),
		AgentName:   p.AgentName,
		Memo:        p.Memo,
		Role:        p.Role,
		Password:    p.Password,
		PayStatus:   p.PayStatus,
		AdminViewed: p.AdminViewed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Event != nil {
		participant.EventName = p.Event.Title
	}

	return participant
}

func (r *ParticipantRepository) daosToDomain(participants []dao.Participant) []domain.Participant {
	converted := make([]domain.Participant, len(participants))
	for i, p := range participants {
		converted[i] = r.daoToDomain(p)
	}
	return converted
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByIDCard(ctx context.Context, idCard string) (domain.Participant, error) {
	found, err := r.dao.FindByIDCard(ctx, domain.NormalizeIDCard(idCard))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByIDCard -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByFamilyID(ctx context.Context, familyID string) ([]domain.Participant, error) {
	found, err := r.dao.FindByFamilyID(ctx, domain.NormalizeIDCard(familyID))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByFamilyID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ParticipantRepository) UpdateAdminFields(ctx context.Context, idCard string, fields map[string]interface{}) (domain.Participant, error) {
	updated, err := r.dao.UpdateAdminFields(ctx, domain.NormalizeIDCard(idCard), fields)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.UpdateAdminFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ParticipantRepository) List(ctx context.Context, eventID *uint) ([]domain.Participant, error) {
	found, err := r.dao.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, idCard string) error {
	if err := r.dao.Delete(ctx, domain.NormalizeIDCard(idCard)); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
