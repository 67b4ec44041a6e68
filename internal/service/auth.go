package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/repository"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrNotAdmin      = errors.New("participant is not an admin")
)

type AuthParticipantRepository interface {
	FindByIDCard(ctx context.Context, idCard string) (domain.Participant, error)
}

type AuthService struct {
	repo AuthParticipantRepository
}

func NewAuthService(repo AuthParticipantRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Login authenticates an admin by id card and password. Ordinary
// members have no password and cannot log in.
func (s *AuthService) Login(ctx context.Context, idCard, password string) (domain.Participant, error) {
	participant, err := s.repo.FindByIDCard(ctx, idCard)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByIDCard -> %w", err)
	}

	if participant.Role != domain.RoleAdmin || participant.Password == "" {
		return domain.Participant{}, ErrNotAdmin
	}

	if err = bcrypt.CompareHashAndPassword([]byte(participant.Password), []byte(password)); err != nil {
		return domain.Participant{}, ErrWrongPassword
	}

	return participant, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
