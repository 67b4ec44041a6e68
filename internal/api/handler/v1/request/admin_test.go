package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateParticipantRequest_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("empty edit passes validation", func(t *testing.T) {
		// Whether an empty edit is meaningful is decided downstream.
		req := UpdateParticipantRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("unexpected pay status fails", func(t *testing.T) {
		req := UpdateParticipantRequest{PayStatus: strPtr("pending")}
		assert.Error(t, req.Validate())
	})

	t.Run("unexpected role fails", func(t *testing.T) {
		req := UpdateParticipantRequest{Role: strPtr("superuser")}
		assert.Error(t, req.Validate())
	})

	t.Run("short password fails", func(t *testing.T) {
		req := UpdateParticipantRequest{Password: strPtr("short")}
		assert.Error(t, req.Validate())
	})
}

func TestCreateCampaignRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := CreateCampaignRequest{Title: "光明燈", Allocation: 10000}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing allocation fails", func(t *testing.T) {
		req := CreateCampaignRequest{Title: "光明燈"}
		assert.Error(t, req.Validate())
	})
}
