package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"
	"lingonberry/internal/app/retail/util"
	"lingonberry/pkg/logger"
	"lingonberry/pkg/metrics"
)

const (
	dashboardCacheTTL  = 60 * time.Second
	lowStockTopLimit   = 5
	salesByStoreLimit  = 5
	defaultDaysHistory = 7
)

// DashboardService собирает сводку для дашборда
// Шесть независимых агрегатов читаются параллельно, готовая сводка
// кэшируется в Redis на 60 секунд
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	cache         util.DashboardCache
}

// NewDashboardService создает новый сервис дашборда
func NewDashboardService(dashboardRepo repository.DashboardRepository, cache util.DashboardCache) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cache,
	}
}

// GetSummary возвращает сводку текущего месяца
// Недоступность кэша не ломает запрос, сводка собирается из БД
func (s *DashboardService) GetSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	cached, err := s.cache.GetDashboardSummary(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read dashboard cache")
	}
	if cached != nil {
		metrics.RecordCacheHit(serviceName, "dashboard")
		return cached, nil
	}
	metrics.RecordCacheMiss(serviceName, "dashboard")

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDashboardSummary(ctx, summary, dashboardCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to write dashboard cache")
	}

	return summary, nil
}

// buildSummary выполняет все агрегатные запросы параллельно
// Первая ошибка любого запроса отменяет сводку целиком
func (s *DashboardService) buildSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error

		monthSales   entity.MonthSales
		unitsSold    int64
		topProduct   *entity.TopProduct
		lowStock     []entity.LowStockEntry
		totalUsers   int64
		salesByStore []entity.StoreSales
	)

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(6)

	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.MonthSales(ctx)
		if err != nil {
			setErr(err)
			return
		}
		monthSales = v
	}()

	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.MonthUnitsSold(ctx)
		if err != nil {
			setErr(err)
			return
		}
		unitsSold = v
	}()

	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.MonthTopProduct(ctx)
		if err != nil {
			setErr(err)
			return
		}
		topProduct = v
	}()

	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.LowStockTop(ctx, lowStockTopLimit)
		if err != nil {
			setErr(err)
			return
		}
		lowStock = v
	}()

	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.CountUsers(ctx)
		if err != nil {
			setErr(err)
			return
		}
		totalUsers = v
	}()

	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.MonthSalesByStore(ctx, salesByStoreLimit)
		if err != nil {
			setErr(err)
			return
		}
		salesByStore = v
	}()

	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", firstErr)
	}

	summary := &entity.DashboardSummary{
		MonthSales:       monthSales,
		UnitsSold:        unitsSold,
		TotalUsers:       totalUsers,
		LowStockProducts: lowStock,
		SalesByStore:     salesByStore,
	}
	// Нулевой TopProduct при отсутствии продаж, форма ответа постоянна
	if topProduct != nil {
		summary.BestSellingProduct = *topProduct
	}
	if summary.LowStockProducts == nil {
		summary.LowStockProducts = []entity.LowStockEntry{}
	}
	if summary.SalesByStore == nil {
		summary.SalesByStore = []entity.StoreSales{}
	}

	return summary, nil
}

// GetSalesLastDays возвращает дневные итоги за последние days дней
// Дни без продаж дополняются нулевыми строками, график всегда непрерывен
func (s *DashboardService) GetSalesLastDays(ctx context.Context, days int) ([]entity.DailySales, error) {
	if days <= 0 {
		days = defaultDaysHistory
	}

	rows, err := s.dashboardRepo.SalesLastDays(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily sales: %w", err)
	}

	// Границы дней на обеих сторонах считаются в UTC, иначе при локальной
	// зоне сервера строка БД может съехать на соседний день или выпасть
	byDay := make(map[string]entity.DailySales, len(rows))
	for _, row := range rows {
		byDay[row.Date.UTC().Format("2006-01-02")] = row
	}

	result := make([]entity.DailySales, 0, days)
	start := time.Now().UTC().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		if row, ok := byDay[key]; ok {
			result = append(result, row)
			continue
		}
		result = append(result, entity.DailySales{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Total: 0,
			Count: 0,
		})
	}

	return result, nil
}
