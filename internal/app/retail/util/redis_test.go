package util

import (
	"context"
	"testing"
	"time"

	"lingonberry/internal/app/retail/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedisClientFromExisting(redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}))
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestDashboardCache_SetAndGet(t *testing.T) {
	// Arrange
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	summary := &entity.DashboardSummary{
		MonthSales: entity.MonthSales{Total: 1200.50, Count: 9},
		UnitsSold:  31,
		TotalUsers: 4,
	}

	// Act
	err := client.SetDashboardSummary(ctx, summary, time.Minute)
	require.NoError(t, err)

	cached, err := client.GetDashboardSummary(ctx)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 1200.50, cached.MonthSales.Total)
	assert.Equal(t, int64(31), cached.UnitsSold)
}

func TestDashboardCache_GetMissReturnsNil(t *testing.T) {
	// Arrange
	client, _ := newTestRedisClient(t)

	// Act
	cached, err := client.GetDashboardSummary(context.Background())

	// Assert - промах кэша это не ошибка
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestDashboardCache_Delete(t *testing.T) {
	// Arrange
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	err := client.SetDashboardSummary(ctx, &entity.DashboardSummary{UnitsSold: 5}, time.Minute)
	require.NoError(t, err)

	// Act
	err = client.DeleteDashboardSummary(ctx)

	// Assert
	require.NoError(t, err)
	cached, err := client.GetDashboardSummary(ctx)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestDashboardCache_ExpiresWithTTL(t *testing.T) {
	// Arrange
	client, mr := newTestRedisClient(t)
	ctx := context.Background()

	err := client.SetDashboardSummary(ctx, &entity.DashboardSummary{UnitsSold: 5}, time.Minute)
	require.NoError(t, err)

	// Перематываем время за пределы TTL
	mr.FastForward(2 * time.Minute)

	// Act
	cached, err := client.GetDashboardSummary(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, cached)
}
