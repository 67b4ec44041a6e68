package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIDCard(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "already canonical",
			in:   "A123456789",
			want: "A123456789",
		},
		{
			name: "lower case prefix is upper cased",
			in:   "a123456789",
			want: "A123456789",
		},
		{
			name: "surrounding whitespace is trimmed",
			in:   "  b987654321 ",
			want: "B987654321",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIDCard(tt.in))
		})
	}
}

func TestParticipant_GroupKey(t *testing.T) {
	t.Run("falls back to own id when no representative given", func(t *testing.T) {
		p := Participant{IDCard: "a123456789"}

		assert.Equal(t, "A123456789", p.GroupKey())
	})

	t.Run("uses canonical family id when present", func(t *testing.T) {
		p := Participant{IDCard: "A123456789", FamilyID: " b222333444 "}

		assert.Equal(t, "B222333444", p.GroupKey())
	})

	t.Run("blank family id counts as absent", func(t *testing.T) {
		p := Participant{IDCard: "A123456789", FamilyID: "   "}

		assert.Equal(t, "A123456789", p.GroupKey())
	})
}

func TestParticipant_ApplyStatus(t *testing.T) {
	t.Run("agent keeps the provided name", func(t *testing.T) {
		p := Participant{}
		p.ApplyStatus(StatusAgent, " 王小明 ")

		assert.Equal(t, StatusAgent, p.Status)
		assert.Equal(t, "王小明", p.AgentName)
	})

	t.Run("switching away from agent clears the stale name", func(t *testing.T) {
		p := Participant{Status: StatusAgent, AgentName: "王小明"}
		p.ApplyStatus(StatusJoin, "")

		assert.Equal(t, StatusJoin, p.Status)
		assert.Empty(t, p.AgentName)
	})

	t.Run("declining clears the stale name too", func(t *testing.T) {
		p := Participant{Status: StatusAgent, AgentName: "王小明"}
		p.ApplyStatus(StatusNone, "ignored")

		assert.Equal(t, StatusNone, p.Status)
		assert.Empty(t, p.AgentName)
	})
}

func TestParticipationStatus_IsValid(t *testing.T) {
	assert.True(t, StatusJoin.IsValid())
	assert.True(t, StatusNone.IsValid())
	assert.True(t, StatusAgent.IsValid())
	assert.False(t, ParticipationStatus("maybe").IsValid())
	assert.False(t, ParticipationStatus("").IsValid())
}
