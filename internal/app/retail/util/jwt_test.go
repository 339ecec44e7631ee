package util

import (
	"testing"
	"time"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAccessToken_Success(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 30*24*time.Hour)
	userID := uuid.New()
	email := "cashier@example.com"

	// Act
	token, err := jwtManager.GenerateAccessToken(userID, email, entity.RoleEmployee)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Проверяем что токен можно распарсить
	claims, err := jwtManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, entity.RoleEmployee, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTManager_GenerateRefreshToken_Unique(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 30*24*time.Hour)

	// Act
	token1, err1 := jwtManager.GenerateRefreshToken()
	token2, err2 := jwtManager.GenerateRefreshToken()

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEmpty(t, token1)
	assert.NotEqual(t, token1, token2) // Токены должны быть уникальными
}

func TestJWTManager_ValidateToken_InvalidToken(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 30*24*time.Hour)

	// Act
	claims, err := jwtManager.ValidateToken("invalid-token")

	// Assert
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateToken_EmptyToken(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 30*24*time.Hour)

	// Act
	claims, err := jwtManager.ValidateToken("")

	// Assert
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	jwtManager1 := NewJWTManager("secret-key-1", 15*time.Minute, 30*24*time.Hour)
	jwtManager2 := NewJWTManager("secret-key-2", 15*time.Minute, 30*24*time.Hour)

	token, _ := jwtManager1.GenerateAccessToken(uuid.New(), "user@example.com", entity.RoleAdmin)

	// Act
	claims, err := jwtManager2.ValidateToken(token)

	// Assert
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateToken_ExpiredToken(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 1*time.Nanosecond, 30*24*time.Hour)

	token, _ := jwtManager.GenerateAccessToken(uuid.New(), "user@example.com", entity.RoleOwner)

	// Ждём пока токен истечёт
	time.Sleep(10 * time.Millisecond)

	// Act
	claims, err := jwtManager.ValidateToken(token)

	// Assert
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_TokenContainsCorrectExpiration(t *testing.T) {
	// Arrange
	accessDuration := 15 * time.Minute
	jwtManager := NewJWTManager("test-secret-key", accessDuration, 30*24*time.Hour)

	beforeGeneration := time.Now()
	token, _ := jwtManager.GenerateAccessToken(uuid.New(), "user@example.com", entity.RoleEmployee)
	afterGeneration := time.Now()

	// Act
	claims, err := jwtManager.ValidateToken(token)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)

	expectedMin := beforeGeneration.Add(accessDuration)
	expectedMax := afterGeneration.Add(accessDuration)

	assert.False(t, claims.ExpiresAt.Time.Before(expectedMin.Truncate(time.Second)))
	assert.False(t, claims.ExpiresAt.Time.After(expectedMax))
}

func TestJWTManager_Durations(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("secret", 30*time.Minute, 14*24*time.Hour)

	// Act & Assert
	assert.Equal(t, 30*time.Minute, jwtManager.GetAccessTokenDuration())
	assert.Equal(t, 14*24*time.Hour, jwtManager.GetRefreshTokenDuration())
}
