package request

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// National IDs look like "A123456789". Lower case is accepted on the
// wire and canonicalized to upper case before storage.
var idCardPattern = regexp.MustCompile(`^[A-Za-z][0-9]{9}$`)

var errMissingAgentName = errors.New("agent name is required when status is agent")

type RegistrationRequest struct {
	IDCard    string `json:"id_card"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Birthday  string `json:"birthday"`
	Zodiac    string `json:"zodiac_sign"`
	FamilyID  string `json:"family_id"`
	EventDate string `json:"event_date"`
	Status    string `json:"participation_status"`
	AgentName string `json:"agent_name"`
}

func (req *RegistrationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.IDCard, validation.Required, validation.Match(idCardPattern)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Address, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Birthday, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Status, validation.Required, validation.In("join", "none", "agent")),
		validation.Field(&req.FamilyID, validation.Match(idCardPattern)),
	)
	if err != nil {
		return err
	}

	if req.Status == "agent" && req.AgentName == "" {
		return errMissingAgentName
	}

	return nil
}
