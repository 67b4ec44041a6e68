package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegistration() RegistrationRequest {
	return RegistrationRequest{
		IDCard:   "A123456789",
		Name:     "陳大文",
		Address:  "台北市中正區",
		Birthday: "1980-01-01",
		Status:   "join",
	}
}

func TestRegistrationRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validRegistration()
		assert.NoError(t, req.Validate())
	})

	t.Run("lower case id card passes", func(t *testing.T) {
		req := validRegistration()
		req.IDCard = "a123456789"
		assert.NoError(t, req.Validate())
	})

	t.Run("malformed id card fails", func(t *testing.T) {
		for _, id := range []string{"", "123456789", "AB12345678", "A12345678", "A1234567890"} {
			req := validRegistration()
			req.IDCard = id
			assert.Error(t, req.Validate(), "id card %q should be rejected", id)
		}
	})

	t.Run("unknown status fails", func(t *testing.T) {
		req := validRegistration()
		req.Status = "maybe"
		assert.Error(t, req.Validate())
	})

	t.Run("agent without agent name fails", func(t *testing.T) {
		req := validRegistration()
		req.Status = "agent"
		assert.ErrorIs(t, req.Validate(), errMissingAgentName)
	})

	t.Run("agent with agent name passes", func(t *testing.T) {
		req := validRegistration()
		req.Status = "agent"
		req.AgentName = "王小明"
		assert.NoError(t, req.Validate())
	})

	t.Run("malformed family id fails", func(t *testing.T) {
		req := validRegistration()
		req.FamilyID = "not-an-id"
		assert.Error(t, req.Validate())
	})

	t.Run("family id is optional", func(t *testing.T) {
		req := validRegistration()
		req.FamilyID = ""
		assert.NoError(t, req.Validate())
	})
}
