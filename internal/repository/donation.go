package repository

import (
	"context"
	"fmt"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository/dao"
)

var (
	ErrDonationNotFound  = dao.ErrDonationNotFound
	ErrInsufficientFunds = dao.ErrInsufficientFunds
	ErrNoCampaignRef     = dao.ErrNoCampaignRef
)

type DonationDAO interface {
	InsertWithDeduction(ctx context.Context, donation dao.Donation) (dao.Donation, error)
	DeleteWithRefund(ctx context.Context, donationID uint) error
	FindByID(ctx context.Context, donationID uint) (dao.Donation, error)
	List(ctx context.Context, campaignID *uint) ([]dao.Donation, error)
	FindByParticipantID(ctx context.Context, participantID uint) ([]dao.Donation, error)
}

type DonationRepository struct {
	dao DonationDAO
}

func NewDonationRepository(dao DonationDAO) *DonationRepository {
	return &DonationRepository{
		dao: dao,
	}
}

func (r *DonationRepository) daoToDomain(d dao.Donation) domain.Donation {
	donation := domain.Donation{
		ID:            d.ID,
		ParticipantID: d.ParticipantID,
		CampaignID:    d.CampaignID,
		Amount:        d.Amount,
		Memo:          d.Memo,
		CreatedAt:     d.CreatedAt,
	}
	if d.Participant.ID != 0 {
		donation.IDCard = d.Participant.IDCard
		donation.Donor = d.Participant.Name
		donation.Birthday = d.Participant.Birthday
		donation.Address = d.Participant.Address
	}
	if d.Campaign != nil {
		donation.CampaignTitle = d.Campaign.Title
	}

	return donation
}

// Record persists the donation and deducts the campaign balance as a
// single unit; both happen or neither does.
func (r *DonationRepository) Record(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	created, err := r.dao.InsertWithDeduction(ctx, dao.Donation{
		ParticipantID: donation.ParticipantID,
		CampaignID:    donation.CampaignID,
		Amount:        donation.Amount,
		Memo:          donation.Memo,
	})
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.InsertWithDeduction -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DonationRepository) Delete(ctx context.Context, donationID uint) error {
	if err := r.dao.DeleteWithRefund(ctx, donationID); err != nil {
		return fmt.Errorf("r.dao.DeleteWithRefund -> %w", err)
	}

	return nil
}

func (r *DonationRepository) FindByID(ctx context.Context, donationID uint) (domain.Donation, error) {
	found, err := r.dao.FindByID(ctx, donationID)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DonationRepository) List(ctx context.Context, campaignID *uint) ([]domain.Donation, error) {
	found, err := r.dao.List(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	donations := make([]domain.Donation, len(found))
	for i, d := range found {
		donations[i] = r.daoToDomain(d)
	}

	return donations, nil
}

func (r *DonationRepository) FindByParticipantID(ctx context.Context, participantID uint) ([]domain.Donation, error) {
	found, err := r.dao.FindByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipantID -> %w", err)
	}

	donations := make([]domain.Donation, len(found))
	for i, d := range found {
		donations[i] = r.daoToDomain(d)
	}

	return donations, nil
}
