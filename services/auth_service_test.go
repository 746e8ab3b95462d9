package services

import (
	"context"
	"testing"
	"time"

	"travel-booking/models"
	"travel-booking/repositories"
	"travel-booking/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func memoryUsers() *fakeUserStore {
	byEmail := map[string]*models.User{}
	return &fakeUserStore{
		CreateFn: func(ctx context.Context, u *models.User) error {
			byEmail[u.Email] = u
			return nil
		},
		FindByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			if u, ok := byEmail[email]; ok {
				return u, nil
			}
			return nil, repositories.ErrNotFound
		},
	}
}

func TestRegisterThenLogin(t *testing.T) {
	s := NewAuthService(memoryUsers(), testSecret, time.Hour)
	ctx := context.Background()

	res, err := s.Register(ctx, models.RegisterRequest{
		Name: "Ayu", Email: "Ayu@Example.com", Password: "secret1", PasswordRepeat: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayu@example.com", res.User.Email)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := utils.ValidateToken(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	_, err = s.Register(ctx, models.RegisterRequest{Name: "Ayu", Email: "ayu@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.Login(ctx, models.LoginRequest{Email: "ayu@example.com", Password: "secret1"})
	assert.NoError(t, err)

	_, err = s.Login(ctx, models.LoginRequest{Email: "ayu@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateRole_Validates(t *testing.T) {
	s := NewUserService(&fakeUserStore{UpdateRoleFn: func(ctx context.Context, id, role string) error {
		return repositories.ErrNotFound
	}})

	assert.ErrorIs(t, s.UpdateRole(context.Background(), "u1", "root"), ErrValidation)
	assert.ErrorIs(t, s.UpdateRole(context.Background(), "u1", models.RoleAdmin), ErrNotFound)
}
