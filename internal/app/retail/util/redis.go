package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lingonberry/internal/app/retail/entity"

	"github.com/redis/go-redis/v9"
)

const dashboardCacheKey = "dashboard:summary"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting оборачивает уже созданное подключение.
// Используется в тестах с miniredis
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// Client возвращает нижележащее подключение для репозиториев,
// работающих с Redis напрямую
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

func (r *RedisClient) SetDashboardSummary(ctx context.Context, summary *entity.DashboardSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard summary: %w", err)
	}

	if err := r.client.Set(ctx, dashboardCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set dashboard summary in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetDashboardSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	data, err := r.client.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dashboard summary from cache: %w", err)
	}

	var summary entity.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard summary: %w", err)
	}

	return &summary, nil
}

// DeleteDashboardSummary сбрасывает кэш сводки, вызывается после изменения продаж
func (r *RedisClient) DeleteDashboardSummary(ctx context.Context) error {
	if err := r.client.Del(ctx, dashboardCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete dashboard summary from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
