package service

import (
	"context"
	"testing"

	"gkms/internal/config"
	"gkms/internal/dto"
	"gkms/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest() (AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, cfg), users
}

func seedUser(t *testing.T, users *stubUserRepo, username, password, role string, locationID *uuid.UUID) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		FullName:     "Test User",
		PasswordHash: string(hash),
		Role:         role,
		LocationID:   locationID,
		Active:       true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	svc, users := newAuthServiceForTest()
	seedUser(t, users, "marcia", "correct-horse", model.RoleAdmin, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "marcia", Password: "correct-horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "marcia", resp.User.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, users := newAuthServiceForTest()
	seedUser(t, users, "marcia", "correct-horse", model.RoleAdmin, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "marcia", Password: "wrong"})
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, users := newAuthServiceForTest()
	u := seedUser(t, users, "marcia", "correct-horse", model.RoleAdmin, nil)
	require.NoError(t, users.Deactivate(context.Background(), u.ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "marcia", Password: "correct-horse"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestRefresh(t *testing.T) {
	svc, users := newAuthServiceForTest()
	seedUser(t, users, "marcia", "correct-horse", model.RoleAdmin, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "marcia", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "marcia", refreshed.User.Username)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorContains(t, err, "refresh token invalid")
}

func TestCreateUser_AgentNeedsLocation(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "agent1",
		FullName: "Branch Agent",
		Password: "password123",
		Role:     model.RoleAgent,
	})
	assert.ErrorContains(t, err, "assigned to a location")
}

func TestCreateUser_AdminWithoutLocation(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "admin1",
		FullName: "Head Office",
		Password: "password123",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.LocationID)
	assert.True(t, resp.Active)
}

func TestListUsers_IncludeInactive(t *testing.T) {
	svc, users := newAuthServiceForTest()
	seedUser(t, users, "active", "password", model.RoleAdmin, nil)
	inactive := seedUser(t, users, "gone", "password", model.RoleAdmin, nil)
	require.NoError(t, users.Deactivate(context.Background(), inactive.ID))

	active, err := svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListUsers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
