package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrIDCardExists        = errors.New("participant already exists")
)

type Participant struct {
	ID uint `gorm:"primaryKey"`

	IDCard   string `gorm:"unique;not null"`
	Name     string `gorm:"not null"`
	Sex      string
	Address  string
	Birthday string
	Zodiac   string `gorm:"column:zodiac_sign"`

	FamilyID  string `gorm:"index;not null"`
	EventID   *uint  `gorm:"index"`
	Event     *Event `gorm:"foreignKey:EventID"`
	EventDate string

	Status    string `gorm:"column:participation_status;not null;default:none"`
	AgentName string
	Memo      string

	Role        string `gorm:"not null;default:member"`
	Password    string
	PayStatus   string `gorm:"not null;default:unpaid"`
	AdminViewed bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_participants_id_card"`) {
			return Participant{}, ErrIDCardExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByIDCard(ctx context.Context, idCard string) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).Preload("Event").First(&participant, "id_card = ?", idCard)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByFamilyID(ctx context.Context, familyID string) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).Where("family_id = ?", familyID).Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

// Update overwrites the mutable fields of the row keyed by id_card.
// Select forces zero values (cleared agent name, admin_viewed reset)
// through, which gorm's struct updates would otherwise skip.
func (d *ParticipantDAO) Update(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id_card = ?", participant.IDCard).
		Select("Name", "Sex", "Address", "Birthday", "Zodiac", "FamilyID",
			"EventID", "EventDate", "Status", "AgentName", "Memo", "AdminViewed").
		Updates(participant)
	if result.Error != nil {
		return Participant{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Participant{}, ErrParticipantNotFound
	}

	return d.FindByIDCard(ctx, participant.IDCard)
}

// UpdateAdminFields applies the admin inline edits. Only keys present
// in fields are touched; callers whitelist the column names.
func (d *ParticipantDAO) UpdateAdminFields(ctx context.Context, idCard string, fields map[string]interface{}) (Participant, error) {
	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id_card = ?", idCard).
		Updates(fields)
	if result.Error != nil {
		return Participant{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Participant{}, ErrParticipantNotFound
	}

	return d.FindByIDCard(ctx, idCard)
}

func (d *ParticipantDAO) List(ctx context.Context, eventID *uint) ([]Participant, error) {
	var participants []Participant

	query := d.db.WithContext(ctx).Preload("Event")
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}

	result := query.Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) Delete(ctx context.Context, idCard string) error {
	result := d.db.WithContext(ctx).Where("id_card = ?", idCard).Delete(&Participant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}
