package mocks

import (
	"context"
	"time"

	"lingonberry/internal/app/retail/entity"

	"github.com/stretchr/testify/mock"
)

// MockMessagePublisher мок для util.MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockDashboardCache мок для util.DashboardCache
type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) SetDashboardSummary(ctx context.Context, summary *entity.DashboardSummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockDashboardCache) GetDashboardSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardSummary), args.Error(1)
}

func (m *MockDashboardCache) DeleteDashboardSummary(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDashboardCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
