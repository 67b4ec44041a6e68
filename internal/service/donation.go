package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository"
)

var (
	ErrCampaignNotFound  = repository.ErrCampaignNotFound
	ErrDonationNotFound  = repository.ErrDonationNotFound
	ErrInsufficientFunds = repository.ErrInsufficientFunds
	ErrNoCampaignRef     = repository.ErrNoCampaignRef
	ErrInvalidAmount     = errors.New("donation amount must be a positive integer")
)

type DonationRepository interface {
	Record(ctx context.Context, donation domain.Donation) (domain.Donation, error)
	Delete(ctx context.Context, donationID uint) error
	FindByID(ctx context.Context, donationID uint) (domain.Donation, error)
	List(ctx context.Context, campaignID *uint) ([]domain.Donation, error)
	FindByParticipantID(ctx context.Context, participantID uint) ([]domain.Donation, error)
}

type DonationParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByIDCard(ctx context.Context, idCard string) (domain.Participant, error)
}

type DonationCampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	FindByID(ctx context.Context, id uint) (domain.Campaign, error)
	FindLatest(ctx context.Context) (domain.Campaign, error)
	FindAll(ctx context.Context) ([]domain.Campaign, error)
}

// BalancePublisher receives the campaign balance after every committed
// change. Publishing is fire-and-forget; it never affects the outcome
// of the donation itself.
type BalancePublisher interface {
	Publish(campaignID uint, remainingBalance int64)
}

type DonationService struct {
	repo            DonationRepository
	participantRepo DonationParticipantRepository
	campaignRepo    DonationCampaignRepository
	publisher       BalancePublisher
}

func NewDonationService(
	repo DonationRepository,
	participantRepo DonationParticipantRepository,
	campaignRepo DonationCampaignRepository,
	publisher BalancePublisher,
) *DonationService {
	return &DonationService{
		repo:            repo,
		participantRepo: participantRepo,
		campaignRepo:    campaignRepo,
		publisher:       publisher,
	}
}

// RecordDonation resolves (or creates) the donor, then hands the
// insert-and-deduct to the repository as one atomic unit. On success
// exactly one donation row exists and the balance dropped by exactly
// the amount; on any failure neither happened.
func (s *DonationService) RecordDonation(ctx context.Context, donor domain.Participant, campaignID uint, amount int64, memo string) (domain.Donation, error) {
	if amount <= 0 {
		return domain.Donation{}, ErrInvalidAmount
	}

	participant, err := s.resolveDonor(ctx, donor)
	if err != nil {
		return domain.Donation{}, err
	}

	donation, err := s.repo.Record(ctx, domain.Donation{
		ParticipantID: participant.ID,
		CampaignID:    &campaignID,
		Amount:        amount,
		Memo:          memo,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return domain.Donation{}, ErrInsufficientFunds
		}
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Donation{}, ErrCampaignNotFound
		}
		return domain.Donation{}, fmt.Errorf("s.repo.Record -> %w", err)
	}

	donation.IDCard = participant.IDCard
	donation.Donor = participant.Name

	s.publishBalance(ctx, campaignID)

	return donation, nil
}

// resolveDonor finds the participant by canonical id card, creating a
// minimal row on first donation.
func (s *DonationService) resolveDonor(ctx context.Context, donor domain.Participant) (domain.Participant, error) {
	existing, err := s.participantRepo.FindByIDCard(ctx, donor.IDCard)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrParticipantNotFound) {
		return domain.Participant{}, fmt.Errorf("s.participantRepo.FindByIDCard -> %w", err)
	}

	donor.Status = domain.StatusNone
	donor.Role = domain.RoleMember
	donor.PayStatus = domain.PayStatusUnpaid
	created, err := s.participantRepo.Create(ctx, donor)
	if err != nil {
		if errors.Is(err, repository.ErrIDCardExists) {
			return s.participantRepo.FindByIDCard(ctx, donor.IDCard)
		}
		return domain.Participant{}, fmt.Errorf("s.participantRepo.Create -> %w", err)
	}

	return created, nil
}

// DeleteDonation removes a donation and credits its amount back to the
// campaign. Deleting an unknown or already-deleted ID is a not-found,
// never a second credit; a donation without a campaign reference is
// refused so the amount cannot leak.
func (s *DonationService) DeleteDonation(ctx context.Context, donationID uint) error {
	donation, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, repository.ErrDonationNotFound) {
			return ErrDonationNotFound
		}
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, donationID); err != nil {
		if errors.Is(err, repository.ErrDonationNotFound) {
			return ErrDonationNotFound
		}
		if errors.Is(err, repository.ErrNoCampaignRef) {
			return ErrNoCampaignRef
		}
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if donation.CampaignID != nil {
		s.publishBalance(ctx, *donation.CampaignID)
	}

	return nil
}

func (s *DonationService) publishBalance(ctx context.Context, campaignID uint) {
	if s.publisher == nil {
		return
	}
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		zap.L().Error("failed to read balance for feed publish",
			zap.Uint("campaign_id", campaignID), zap.Error(err))
		return
	}
	s.publisher.Publish(campaign.ID, campaign.RemainingBalance)
}

func (s *DonationService) ListDonations(ctx context.Context, campaignID *uint) ([]domain.Donation, error) {
	donations, err := s.repo.List(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return donations, nil
}

func (s *DonationService) DonationsByParticipant(ctx context.Context, idCard string) ([]domain.Donation, error) {
	participant, err := s.participantRepo.FindByIDCard(ctx, idCard)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("s.participantRepo.FindByIDCard -> %w", err)
	}

	donations, err := s.repo.FindByParticipantID(ctx, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParticipantID -> %w", err)
	}

	return donations, nil
}

func (s *DonationService) CurrentCampaign(ctx context.Context) (domain.Campaign, error) {
	campaign, err := s.campaignRepo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Campaign{}, ErrCampaignNotFound
		}
		return domain.Campaign{}, fmt.Errorf("s.campaignRepo.FindLatest -> %w", err)
	}

	return campaign, nil
}

func (s *DonationService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.campaignRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.campaignRepo.FindAll -> %w", err)
	}

	return campaigns, nil
}

func (s *DonationService) GetCampaign(ctx context.Context, id uint) (domain.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Campaign{}, ErrCampaignNotFound
		}
		return domain.Campaign{}, fmt.Errorf("s.campaignRepo.FindByID -> %w", err)
	}

	return campaign, nil
}

// CreateCampaign opens a fundraising campaign whose balance starts at
// the full allocation.
func (s *DonationService) CreateCampaign(ctx context.Context, title string, allocation int64) (domain.Campaign, error) {
	if allocation <= 0 {
		return domain.Campaign{}, ErrInvalidAmount
	}

	campaign, err := s.campaignRepo.Create(ctx, domain.Campaign{
		Title:            title,
		Code:             fmt.Sprintf("event_%d", time.Now().UnixMilli()),
		Allocation:       allocation,
		RemainingBalance: allocation,
	})
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.campaignRepo.Create -> %w", err)
	}

	return campaign, nil
}
