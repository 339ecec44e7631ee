package service

import (
	"context"
	"testing"
	"time"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"
	"lingonberry/internal/app/retail/repository/mocks"
	"lingonberry/internal/app/retail/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest() (*AuthService, *mocks.MockUserRepository, *mocks.MockTokenRepository) {
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 720*time.Hour)

	return NewAuthService(userRepo, tokenRepo, jwtManager), userRepo, tokenRepo
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthServiceForTest()

	ctx := context.Background()
	hash, err := util.HashPassword("correct-password")
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "cashier@example.com",
		PasswordHash: hash,
		Role:         entity.RoleEmployee,
	}

	userRepo.On("GetByEmail", ctx, "cashier@example.com").Return(user, nil)
	tokenRepo.On("SaveRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "cashier@example.com",
		Password: "correct-password",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, int64(900), resp.Tokens.ExpiresIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthServiceForTest()

	ctx := context.Background()
	hash, err := util.HashPassword("correct-password")
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "cashier@example.com",
		PasswordHash: hash,
	}

	userRepo.On("GetByEmail", ctx, "cashier@example.com").Return(user, nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "cashier@example.com",
		Password: "wrong-password",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()

	ctx := context.Background()
	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.Nil(t, resp)
	// Неизвестный email неотличим от неверного пароля
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokens_Success(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthServiceForTest()

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "admin@example.com", Role: entity.RoleAdmin}

	tokenRepo.On("GetRefreshToken", ctx, "old-refresh").Return(userID, nil)
	tokenRepo.On("DeleteRefreshToken", ctx, "old-refresh").Return(nil)
	userRepo.On("GetByID", ctx, userID).Return(user, nil)
	tokenRepo.On("SaveRefreshToken", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	tokens, err := svc.RefreshTokens(ctx, "old-refresh")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, "old-refresh", tokens.RefreshToken)
	tokenRepo.AssertCalled(t, "DeleteRefreshToken", ctx, "old-refresh")
}

func TestRefreshTokens_Invalid(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest()

	ctx := context.Background()
	tokenRepo.On("GetRefreshToken", ctx, "bogus").Return(uuid.Nil, repository.ErrTokenNotFound)

	tokens, err := svc.RefreshTokens(ctx, "bogus")

	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_RevokesTokens(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest()

	ctx := context.Background()
	userID := uuid.New()

	tokenRepo.On("AddToBlacklist", ctx, "access-token", mock.AnythingOfType("time.Time")).Return(nil)
	tokenRepo.On("DeleteRefreshToken", ctx, "refresh-token").Return(nil)
	tokenRepo.On("DeleteUserRefreshTokens", ctx, userID).Return(nil)

	err := svc.Logout(ctx, "access-token", "refresh-token", userID)

	assert.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}
