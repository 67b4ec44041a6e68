package response

import "github.com/wanfu-temple/temple-api/internal/domain"

type LoginResponse struct {
	Token string             `json:"token"`
	User  domain.Participant `json:"user"`
}
