package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"
	"lingonberry/pkg/logger"
	"lingonberry/pkg/metrics"

	"github.com/google/uuid"
)

const lowStockReportType = "low_stock"

// LowStockReportService генерирует отчёты о низких остатках по расписанию
type LowStockReportService struct {
	storeRepo     repository.StoreRepository
	inventoryRepo repository.InventoryRepository
	reportRepo    repository.ReportRepository
}

// NewLowStockReportService создает новый генератор отчётов о низких остатках
func NewLowStockReportService(
	storeRepo repository.StoreRepository,
	inventoryRepo repository.InventoryRepository,
	reportRepo repository.ReportRepository,
) *LowStockReportService {
	return &LowStockReportService{
		storeRepo:     storeRepo,
		inventoryRepo: inventoryRepo,
		reportRepo:    reportRepo,
	}
}

// GenerateReports обходит все магазины и сохраняет отчёт для каждого,
// где есть товары ниже порога. Автором отчёта выступает владелец магазина.
// Ошибка по одному магазину не останавливает обход остальных
func (s *LowStockReportService) GenerateReports(ctx context.Context) error {
	stores, err := s.storeRepo.GetAll(ctx)
	if err != nil {
		metrics.LowStockReportsGenerated.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to get stores: %w", err)
	}

	var failed int
	for _, store := range stores {
		if err := s.generateStoreReport(ctx, &store); err != nil {
			failed++
			metrics.LowStockReportsGenerated.WithLabelValues("failed").Inc()
			logger.Error().Err(err).
				Str("store_id", store.ID.String()).
				Msg("failed to generate low stock report")
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to generate reports for %d of %d stores", failed, len(stores))
	}

	return nil
}

func (s *LowStockReportService) generateStoreReport(ctx context.Context, store *entity.StoreWithOwner) error {
	items, err := s.inventoryRepo.LowStock(ctx, store.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to get low stock items: %w", err)
	}

	// Магазин без проблемных остатков отчёта не получает
	if len(items) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Low stock report for store %q (%s)\n", store.Name, store.Address)
	fmt.Fprintf(&sb, "Items below threshold: %d\n\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s: %d left (threshold %d)\n",
			item.ProductName, item.Quantity, item.LowStockThreshold)
	}

	storeID := store.ID
	report := &entity.Report{
		ID:          uuid.New(),
		Type:        lowStockReportType,
		Content:     sb.String(),
		AuthorID:    store.OwnerID,
		StoreID:     &storeID,
		GeneratedAt: time.Now(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	metrics.LowStockReportsGenerated.WithLabelValues("success").Inc()
	logger.Info().
		Str("store_id", store.ID.String()).
		Int("items", len(items)).
		Msg("low stock report generated")

	return nil
}
