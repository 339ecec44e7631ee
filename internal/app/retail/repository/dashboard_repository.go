package repository

import (
	"context"
	"errors"
	"fmt"

	"lingonberry/internal/app/retail/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository создает новый репозиторий агрегатов дашборда
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

// MonthSales считает сумму и количество продаж текущего календарного месяца
func (r *dashboardRepository) MonthSales(ctx context.Context) (entity.MonthSales, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE created_at >= date_trunc('month', now())`

	var result entity.MonthSales
	if err := r.pool.QueryRow(ctx, query).Scan(&result.Total, &result.Count); err != nil {
		return entity.MonthSales{}, fmt.Errorf("failed to get month sales: %w", err)
	}

	return result, nil
}

// MonthUnitsSold считает общее количество проданных единиц за текущий месяц
func (r *dashboardRepository) MonthUnitsSold(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.created_at >= date_trunc('month', now())`

	var units int64
	if err := r.pool.QueryRow(ctx, query).Scan(&units); err != nil {
		return 0, fmt.Errorf("failed to get units sold: %w", err)
	}

	return units, nil
}

// MonthTopProduct находит самый продаваемый товар месяца.
// При равенстве количества побеждает меньший id товара, результат детерминирован.
// Отсутствие продаж возвращает nil без ошибки
func (r *dashboardRepository) MonthTopProduct(ctx context.Context) (*entity.TopProduct, error) {
	query := `
		SELECT p.id, p.name, SUM(si.quantity) AS qty
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= date_trunc('month', now())
		GROUP BY p.id, p.name
		ORDER BY qty DESC, p.id ASC
		LIMIT 1`

	var top entity.TopProduct
	err := r.pool.QueryRow(ctx, query).Scan(&top.ProductID, &top.Name, &top.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get top product: %w", err)
	}

	return &top, nil
}

// LowStockTop возвращает строки инвентаря ниже собственного порога,
// отсортированные по остатку по возрастанию
func (r *dashboardRepository) LowStockTop(ctx context.Context, limit int) ([]entity.LowStockEntry, error) {
	query := `
		SELECT i.id, i.store_id, i.product_id, p.name, i.quantity, i.low_stock_threshold
		FROM inventory_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.quantity < i.low_stock_threshold
		ORDER BY i.quantity ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock: %w", err)
	}
	defer rows.Close()

	entries := make([]entity.LowStockEntry, 0)
	for rows.Next() {
		var entry entity.LowStockEntry
		if err := rows.Scan(
			&entry.InventoryID, &entry.StoreID, &entry.ProductID,
			&entry.ProductName, &entry.Quantity, &entry.Threshold); err != nil {
			return nil, fmt.Errorf("failed to scan low stock entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CountUsers считает всех пользователей системы
func (r *dashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// MonthSalesByStore возвращает итоги продаж по магазинам за текущий месяц
func (r *dashboardRepository) MonthSalesByStore(ctx context.Context, limit int) ([]entity.StoreSales, error) {
	query := `
		SELECT st.id, st.name, COALESCE(SUM(s.total), 0) AS total
		FROM sales s
		JOIN stores st ON st.id = s.store_id
		WHERE s.created_at >= date_trunc('month', now())
		GROUP BY st.id, st.name
		ORDER BY total DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by store: %w", err)
	}
	defer rows.Close()

	stores := make([]entity.StoreSales, 0)
	for rows.Next() {
		var store entity.StoreSales
		if err := rows.Scan(&store.StoreID, &store.StoreName, &store.Total); err != nil {
			return nil, fmt.Errorf("failed to scan store sales: %w", err)
		}
		stores = append(stores, store)
	}

	return stores, rows.Err()
}

// SalesLastDays возвращает дневные итоги продаж за последние days дней.
// Границы дней считаются в UTC независимо от зоны сессии БД.
// Дни без продаж в выборку не попадают, сервис дополняет их нулями
func (r *dashboardRepository) SalesLastDays(ctx context.Context, days int) ([]entity.DailySales, error) {
	query := `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE created_at >= date_trunc('day', now() AT TIME ZONE 'UTC') AT TIME ZONE 'UTC' - make_interval(days => $1 - 1)
		GROUP BY day
		ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily sales: %w", err)
	}
	defer rows.Close()

	daily := make([]entity.DailySales, 0)
	for rows.Next() {
		var day entity.DailySales
		if err := rows.Scan(&day.Date, &day.Total, &day.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		daily = append(daily, day)
	}

	return daily, rows.Err()
}
