package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrDonationNotFound  = errors.New("donation not found")
	ErrInsufficientFunds = errors.New("donation amount exceeds remaining balance")
	ErrNoCampaignRef     = errors.New("cannot reverse balance: donation has no campaign reference")
)

type Donation struct {
	ID uint `gorm:"primaryKey"`

	ParticipantID uint        `gorm:"not null;index"`
	Participant   Participant `gorm:"foreignKey:ParticipantID"`
	CampaignID    *uint       `gorm:"index"`
	Campaign      *Campaign   `gorm:"foreignKey:CampaignID"`

	Amount int64 `gorm:"not null"`
	Memo   string

	CreatedAt time.Time `gorm:"not null"`
}

type DonationDAO struct {
	db *gorm.DB
}

func NewDonationDAO(db *gorm.DB) *DonationDAO {
	return &DonationDAO{
		db: db,
	}
}

// InsertWithDeduction persists the donation and decrements the
// campaign balance as one transaction. The decrement is a conditional
// single-statement update, so two concurrent donors cannot both pass a
// stale sufficiency check: whoever loses the race gets
// ErrInsufficientFunds and the whole transaction, donation row
// included, rolls back.
func (d *DonationDAO) InsertWithDeduction(ctx context.Context, donation Donation) (Donation, error) {
	if donation.CampaignID == nil {
		return Donation{}, ErrCampaignNotFound
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign Campaign
		if err := tx.First(&campaign, *donation.CampaignID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}

		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		result := tx.Model(&Campaign{}).
			Where("id = ? AND remaining_balance >= ?", *donation.CampaignID, donation.Amount).
			Update("remaining_balance", gorm.Expr("remaining_balance - ?", donation.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		return nil
	})
	if err != nil {
		return Donation{}, err
	}

	return donation, nil
}

// DeleteWithRefund removes the donation and credits its amount back to
// the campaign in one transaction. A row without a campaign reference
// is refused rather than silently leaking the amount, and a second
// delete of the same ID is a not-found, never a second credit.
func (d *DonationDAO) DeleteWithRefund(ctx context.Context, donationID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donation Donation
		if err := tx.First(&donation, donationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDonationNotFound
			}
			return err
		}

		if donation.CampaignID == nil {
			return ErrNoCampaignRef
		}

		if err := tx.Delete(&Donation{}, donationID).Error; err != nil {
			return err
		}

		result := tx.Model(&Campaign{}).
			Where("id = ?", *donation.CampaignID).
			Update("remaining_balance", gorm.Expr("remaining_balance + ?", donation.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCampaignNotFound
		}

		return nil
	})
}

func (d *DonationDAO) FindByID(ctx context.Context, donationID uint) (Donation, error) {
	var donation Donation

	result := d.db.WithContext(ctx).
		Preload("Participant").
		Preload("Campaign").
		First(&donation, donationID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Donation{}, ErrDonationNotFound
		}

		return Donation{}, result.Error
	}

	return donation, nil
}

func (d *DonationDAO) List(ctx context.Context, campaignID *uint) ([]Donation, error) {
	var donations []Donation

	query := d.db.WithContext(ctx).Preload("Participant").Preload("Campaign")
	if campaignID != nil {
		query = query.Where("campaign_id = ?", *campaignID)
	}

	result := query.Order("created_at DESC").Find(&donations)
	if result.Error != nil {
		return nil, result.Error
	}

	return donations, nil
}

func (d *DonationDAO) FindByParticipantID(ctx context.Context, participantID uint) ([]Donation, error) {
	var donations []Donation

	result := d.db.WithContext(ctx).
		Preload("Campaign").
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Find(&donations)
	if result.Error != nil {
		return nil, result.Error
	}

	return donations, nil
}
