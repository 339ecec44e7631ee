package util

import (
	"context"
	"time"

	"lingonberry/internal/app/retail/entity"
)

// DashboardCache интерфейс для работы с кэшем сводки дашборда
// Используется для dependency injection и упрощения тестирования
type DashboardCache interface {
	SetDashboardSummary(ctx context.Context, summary *entity.DashboardSummary, ttl time.Duration) error
	GetDashboardSummary(ctx context.Context) (*entity.DashboardSummary, error)
	DeleteDashboardSummary(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
