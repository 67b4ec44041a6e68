package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanfu-temple/temple-api/internal/domain"
)

func TestParticipantsWorkbook(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	participants := []domain.Participant{
		{
			IDCard:    "A123456789",
			Name:      "陳大文",
			EventName: "祈福法會",
			Address:   "台北市中正區",
			Birthday:  "1980-01-01",
			Zodiac:    "猴",
			Status:    domain.StatusJoin,
			PayStatus: domain.PayStatusPaid,
			CreatedAt: created,
		},
		{
			IDCard:      "B222333444",
			Name:        "陳小文",
			Status:      domain.StatusAgent,
			AgentName:   "王小明",
			FamilyID:    "A123456789",
			PayStatus:   domain.PayStatusUnpaid,
			AdminViewed: true,
		},
	}

	f, err := ParticipantsWorkbook(participants)
	require.NoError(t, err)

	rows, err := f.GetRows(participantsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, participantHeaders, rows[0])

	assert.Equal(t, "陳大文", rows[1][0])
	assert.Equal(t, "祈福法會", rows[1][1])
	assert.Equal(t, "參加", rows[1][6])
	assert.Equal(t, "2026-08-01 10:30:00", rows[1][9])
	assert.Equal(t, "已繳交", rows[1][11])
	assert.Equal(t, "否", rows[1][12])

	assert.Equal(t, "代辦", rows[2][6])
	assert.Equal(t, "王小明", rows[2][7])
	assert.Equal(t, "A123456789", rows[2][8])
	assert.Equal(t, "未繳交", rows[2][11])
	assert.Equal(t, "是", rows[2][12])
}

func TestDonationsWorkbook(t *testing.T) {
	donated := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)

	donations := []domain.Donation{
		{
			IDCard:        "A123456789",
			Donor:         "陳大文",
			Birthday:      "1980-01-01",
			Address:       "台北市中正區",
			CampaignTitle: "光明燈",
			Amount:        500,
			Memo:          "闔家平安",
			CreatedAt:     donated,
		},
	}

	f, err := DonationsWorkbook(donations)
	require.NoError(t, err)

	rows, err := f.GetRows(donationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, donationHeaders, rows[0])
	assert.Equal(t, []string{
		"A123456789", "陳大文", "1980-01-01", "台北市中正區",
		"光明燈", "500", "2026-08-15 14:00:00", "闔家平安",
	}, rows[1])
}

func TestParticipantsWorkbook_Empty(t *testing.T) {
	f, err := ParticipantsWorkbook(nil)
	require.NoError(t, err)

	rows, err := f.GetRows(participantsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, participantHeaders, rows[0])
}
