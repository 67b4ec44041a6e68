package repository

import (
	"context"
	"fmt"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository/dao"
)

var ErrCampaignNotFound = dao.ErrCampaignNotFound

type CampaignDAO interface {
	Insert(ctx context.Context, campaign dao.Campaign) (dao.Campaign, error)
	FindByID(ctx context.Context, id uint) (dao.Campaign, error)
	FindLatest(ctx context.Context) (dao.Campaign, error)
	FindAll(ctx context.Context) ([]dao.Campaign, error)
}

type CampaignRepository struct {
	dao CampaignDAO
}

func NewCampaignRepository(dao CampaignDAO) *CampaignRepository {
	return &CampaignRepository{
		dao: dao,
	}
}

func (r *CampaignRepository) daoToDomain(c dao.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:               c.ID,
		Title:            c.Title,
		Code:             c.Code,
		Allocation:       c.Allocation,
		RemainingBalance: c.RemainingBalance,
		CreatedAt:        c.CreatedAt,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	created, err := r.dao.Insert(ctx, dao.Campaign{
		Title:            campaign.Title,
		Code:             campaign.Code,
		Allocation:       campaign.Allocation,
		RemainingBalance: campaign.RemainingBalance,
	})
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uint) (domain.Campaign, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CampaignRepository) FindLatest(ctx context.Context) (domain.Campaign, error) {
	found, err := r.dao.FindLatest(ctx)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.FindLatest -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CampaignRepository) FindAll(ctx context.Context) ([]domain.Campaign, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	campaigns := make([]domain.Campaign, len(found))
	for i, c := range found {
		campaigns[i] = r.daoToDomain(c)
	}

	return campaigns, nil
}
