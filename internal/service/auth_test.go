package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanfu-temple/temple-api/internal/domain"
)

func seedAdmin(t *testing.T, repo *fakeParticipantRepo, idCard, password string) {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), domain.Participant{
		IDCard:   idCard,
		Name:     "廟務管理員",
		Role:     domain.RoleAdmin,
		Password: hash,
	})
	require.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return the admin", func(t *testing.T) {
		repo := newFakeParticipantRepo()
		seedAdmin(t, repo, "A123456789", "correct-horse-battery")
		svc := NewAuthService(repo)

		user, err := svc.Login(ctx, "a123456789", "correct-horse-battery")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		repo := newFakeParticipantRepo()
		seedAdmin(t, repo, "A123456789", "correct-horse-battery")
		svc := NewAuthService(repo)

		_, err := svc.Login(ctx, "A123456789", "wrong")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown id card is a not found", func(t *testing.T) {
		svc := NewAuthService(newFakeParticipantRepo())

		_, err := svc.Login(ctx, "Z999999999", "whatever")
		assert.ErrorIs(t, err, ErrParticipantNotFound)
	})

	t.Run("ordinary members cannot log in", func(t *testing.T) {
		repo := newFakeParticipantRepo()
		_, err := repo.Create(ctx, domain.Participant{
			IDCard: "B222333444",
			Role:   domain.RoleMember,
		})
		require.NoError(t, err)
		svc := NewAuthService(repo)

		_, err = svc.Login(ctx, "B222333444", "anything")
		assert.ErrorIs(t, err, ErrNotAdmin)
	})
}
