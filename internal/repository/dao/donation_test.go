package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB spins up a throwaway Postgres container. The conditional
// deduction only shows its concurrency behavior on a real database, an
// in-memory substitute would prove nothing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=temple_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=temple_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	pool.MaxWait = 90 * time.Second
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func seedCampaign(t *testing.T, db *gorm.DB, allocation int64) Campaign {
	t.Helper()

	campaign, err := NewCampaignDAO(db).Insert(context.Background(), Campaign{
		Title:            "光明燈",
		Code:             "event_1",
		Allocation:       allocation,
		RemainingBalance: allocation,
	})
	require.NoError(t, err)

	return campaign
}

func seedParticipant(t *testing.T, db *gorm.DB, idCard string) Participant {
	t.Helper()

	participant, err := NewParticipantDAO(db).Insert(context.Background(), Participant{
		IDCard:   idCard,
		Name:     "陳大文",
		FamilyID: idCard,
		Status:   "none",
	})
	require.NoError(t, err)

	return participant
}

func TestDonationDAO_InsertWithDeduction(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	donationDAO := NewDonationDAO(db)
	campaignDAO := NewCampaignDAO(db)

	campaign := seedCampaign(t, db, 10000)
	participant := seedParticipant(t, db, "A123456789")

	t.Run("deducts exactly the amount", func(t *testing.T) {
		_, err := donationDAO.InsertWithDeduction(ctx, Donation{
			ParticipantID: participant.ID,
			CampaignID:    &campaign.ID,
			Amount:        500,
		})
		require.NoError(t, err)

		got, err := campaignDAO.FindByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(9500), got.RemainingBalance)
	})

	t.Run("insufficient funds rolls back the donation row too", func(t *testing.T) {
		_, err := donationDAO.InsertWithDeduction(ctx, Donation{
			ParticipantID: participant.ID,
			CampaignID:    &campaign.ID,
			Amount:        9600,
		})
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		got, err := campaignDAO.FindByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(9500), got.RemainingBalance)

		donations, err := donationDAO.List(ctx, &campaign.ID)
		require.NoError(t, err)
		assert.Len(t, donations, 1)
	})

	t.Run("unknown campaign is a not found", func(t *testing.T) {
		missing := uint(9999)
		_, err := donationDAO.InsertWithDeduction(ctx, Donation{
			ParticipantID: participant.ID,
			CampaignID:    &missing,
			Amount:        100,
		})
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("nil campaign reference is refused", func(t *testing.T) {
		_, err := donationDAO.InsertWithDeduction(ctx, Donation{
			ParticipantID: participant.ID,
			Amount:        100,
		})
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})
}

func TestDonationDAO_ConcurrentDeduction(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	donationDAO := NewDonationDAO(db)
	campaignDAO := NewCampaignDAO(db)

	campaign := seedCampaign(t, db, 1000)
	participant := seedParticipant(t, db, "B222333444")

	const workers = 20
	const amount = 100

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := donationDAO.InsertWithDeduction(ctx, Donation{
				ParticipantID: participant.ID,
				CampaignID:    &campaign.ID,
				Amount:        amount,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)

	got, err := campaignDAO.FindByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.RemainingBalance)

	donations, err := donationDAO.List(ctx, &campaign.ID)
	require.NoError(t, err)
	assert.Len(t, donations, 10)
}

func TestDonationDAO_DeleteWithRefund(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	donationDAO := NewDonationDAO(db)
	campaignDAO := NewCampaignDAO(db)

	campaign := seedCampaign(t, db, 10000)
	participant := seedParticipant(t, db, "C333444555")

	donation, err := donationDAO.InsertWithDeduction(ctx, Donation{
		ParticipantID: participant.ID,
		CampaignID:    &campaign.ID,
		Amount:        500,
	})
	require.NoError(t, err)

	t.Run("credits the amount back", func(t *testing.T) {
		require.NoError(t, donationDAO.DeleteWithRefund(ctx, donation.ID))

		got, err := campaignDAO.FindByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), got.RemainingBalance)
	})

	t.Run("second delete is a not found, never a second credit", func(t *testing.T) {
		assert.ErrorIs(t, donationDAO.DeleteWithRefund(ctx, donation.ID), ErrDonationNotFound)

		got, err := campaignDAO.FindByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), got.RemainingBalance)
	})

	t.Run("unknown id is a not found", func(t *testing.T) {
		assert.ErrorIs(t, donationDAO.DeleteWithRefund(ctx, 9999), ErrDonationNotFound)
	})
}

func TestParticipantDAO_UniqueIDCard(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	participantDAO := NewParticipantDAO(db)

	_, err := participantDAO.Insert(ctx, Participant{
		IDCard:   "D444555666",
		Name:     "陳大文",
		FamilyID: "D444555666",
		Status:   "join",
	})
	require.NoError(t, err)

	_, err = participantDAO.Insert(ctx, Participant{
		IDCard:   "D444555666",
		Name:     "另一個人",
		FamilyID: "D444555666",
		Status:   "none",
	})
	assert.ErrorIs(t, err, ErrIDCardExists)
}
