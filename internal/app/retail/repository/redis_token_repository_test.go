package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TokenRepositoryTestSuite тестовый suite для Redis repository
type TokenRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      TokenRepository
}

func TestTokenRepositorySuite(t *testing.T) {
	suite.Run(t, new(TokenRepositoryTestSuite))
}

func (s *TokenRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRedisTokenRepository(s.client)
}

func (s *TokenRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *TokenRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== RefreshToken Tests =====================

func (s *TokenRepositoryTestSuite) TestSaveAndGetRefreshToken() {
	ctx := context.Background()
	userID := uuid.New()
	token := "refresh-token-value"

	err := s.repo.SaveRefreshToken(ctx, userID, token, time.Now().Add(time.Hour))
	s.NoError(err)

	// Act
	owner, err := s.repo.GetRefreshToken(ctx, token)

	// Assert
	s.NoError(err)
	s.Equal(userID, owner)
}

func (s *TokenRepositoryTestSuite) TestGetRefreshToken_NotFound() {
	ctx := context.Background()

	// Act
	owner, err := s.repo.GetRefreshToken(ctx, "unknown-token")

	// Assert
	s.ErrorIs(err, ErrTokenNotFound)
	s.Equal(uuid.Nil, owner)
}

func (s *TokenRepositoryTestSuite) TestSaveRefreshToken_AlreadyExpired() {
	ctx := context.Background()

	// Act
	err := s.repo.SaveRefreshToken(ctx, uuid.New(), "stale-token", time.Now().Add(-time.Minute))

	// Assert
	s.Error(err)
	s.Contains(err.Error(), "expired")
}

func (s *TokenRepositoryTestSuite) TestDeleteRefreshToken() {
	ctx := context.Background()
	userID := uuid.New()
	token := "token-to-delete"

	err := s.repo.SaveRefreshToken(ctx, userID, token, time.Now().Add(time.Hour))
	s.NoError(err)

	// Act
	err = s.repo.DeleteRefreshToken(ctx, token)

	// Assert
	s.NoError(err)
	_, err = s.repo.GetRefreshToken(ctx, token)
	s.ErrorIs(err, ErrTokenNotFound)
}

func (s *TokenRepositoryTestSuite) TestDeleteUserRefreshTokens_RevokesAllSessions() {
	ctx := context.Background()
	userID := uuid.New()

	err := s.repo.SaveRefreshToken(ctx, userID, "session-one", time.Now().Add(time.Hour))
	s.NoError(err)
	err = s.repo.SaveRefreshToken(ctx, userID, "session-two", time.Now().Add(time.Hour))
	s.NoError(err)

	// Act
	err = s.repo.DeleteUserRefreshTokens(ctx, userID)

	// Assert
	s.NoError(err)
	_, err = s.repo.GetRefreshToken(ctx, "session-one")
	s.ErrorIs(err, ErrTokenNotFound)
	_, err = s.repo.GetRefreshToken(ctx, "session-two")
	s.ErrorIs(err, ErrTokenNotFound)
}

func (s *TokenRepositoryTestSuite) TestRefreshToken_ExpiresWithTTL() {
	ctx := context.Background()
	userID := uuid.New()
	token := "short-lived-token"

	err := s.repo.SaveRefreshToken(ctx, userID, token, time.Now().Add(time.Minute))
	s.NoError(err)

	// Перематываем время в miniredis за пределы TTL
	s.miniRedis.FastForward(2 * time.Minute)

	// Act
	_, err = s.repo.GetRefreshToken(ctx, token)

	// Assert
	s.ErrorIs(err, ErrTokenNotFound)
}

// ===================== Blacklist Tests =====================

func (s *TokenRepositoryTestSuite) TestAddToBlacklist() {
	ctx := context.Background()
	token := "revoked-access-token"

	err := s.repo.AddToBlacklist(ctx, token, time.Now().Add(15*time.Minute))
	s.NoError(err)

	// Act
	blacklisted, err := s.repo.IsBlacklisted(ctx, token)

	// Assert
	s.NoError(err)
	s.True(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestAddToBlacklist_ExpiredTokenIsNoop() {
	ctx := context.Background()
	token := "already-expired-token"

	// Act
	err := s.repo.AddToBlacklist(ctx, token, time.Now().Add(-time.Minute))

	// Assert
	s.NoError(err)
	blacklisted, err := s.repo.IsBlacklisted(ctx, token)
	s.NoError(err)
	s.False(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestBlacklist_ExpiresWithToken() {
	ctx := context.Background()
	token := "short-blacklist-token"

	err := s.repo.AddToBlacklist(ctx, token, time.Now().Add(time.Minute))
	s.NoError(err)

	s.miniRedis.FastForward(2 * time.Minute)

	// Act
	blacklisted, err := s.repo.IsBlacklisted(ctx, token)

	// Assert
	s.NoError(err)
	s.False(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestIsBlacklisted_UnknownToken() {
	ctx := context.Background()

	// Act
	blacklisted, err := s.repo.IsBlacklisted(ctx, "never-seen-token")

	// Assert
	s.NoError(err)
	s.False(blacklisted)
}
