package domain

import (
	"strings"
	"time"
)

type ParticipationStatus string

const (
	StatusJoin  ParticipationStatus = "join"
	StatusNone  ParticipationStatus = "none"
	StatusAgent ParticipationStatus = "agent"
)

func (s ParticipationStatus) IsValid() bool {
	switch s {
	case StatusJoin, StatusNone, StatusAgent:
		return true
	}
	return false
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

const (
	PayStatusPaid   = "paid"
	PayStatusUnpaid = "unpaid"
)

type Participant struct {
	ID        uint      `json:"id"`
	IDCard    string    `json:"id_card"`
	Name      string    `json:"name"`
	Sex       string    `json:"sex"`
	Address   string    `json:"address"`
	Birthday  string    `json:"birthday"`
	Zodiac    string    `json:"zodiac_sign"`
	FamilyID  string    `json:"family_id"`
	EventID   *uint     `json:"event_id"`
	EventName string    `json:"event_name,omitempty"`
	EventDate string    `json:"event_date"`

	Status    ParticipationStatus `json:"participation_status"`
	AgentName string              `json:"agent_name"`
	Memo      string              `json:"memo"`

	Role        string `json:"role"`
	Password    string `json:"-"`
	PayStatus   string `json:"pay_status"`
	AdminViewed bool   `json:"admin_viewed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeIDCard is the single canonical form of a national ID.
// Applied on every read and write path so lookups by "a123456789"
// and "A123456789" resolve to the same row.
func NormalizeIDCard(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// GroupKey returns the family group key, falling back to the
// participant's own canonical ID when no representative was given.
func (p *Participant) GroupKey() string {
	if strings.TrimSpace(p.FamilyID) == "" {
		return NormalizeIDCard(p.IDCard)
	}
	return NormalizeIDCard(p.FamilyID)
}

// ApplyStatus sets the participation status and keeps the agent name
// consistent with it: "agent" keeps the provided name, the other two
// statuses must not carry a stale one.
func (p *Participant) ApplyStatus(status ParticipationStatus, agentName string) {
	p.Status = status
	if status == StatusAgent {
		p.AgentName = strings.TrimSpace(agentName)
	} else {
		p.AgentName = ""
	}
}
