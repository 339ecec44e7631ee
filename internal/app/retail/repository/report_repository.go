package repository

import (
	"context"
	"errors"
	"fmt"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository создает новый репозиторий отчётов
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

// Create сохраняет отчёт
func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, type, content, author_id, store_id, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		report.ID, report.Type, report.Content, report.AuthorID, report.StoreID, report.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetByID получает отчёт с именами автора и магазина
// LEFT JOIN по магазину: отчёт может не относиться к конкретному магазину
func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReportWithNames, error) {
	query := `
		SELECT r.id, r.type, r.content, r.author_id, r.store_id, r.generated_at,
		       u.name AS author_name, COALESCE(s.name, '') AS store_name
		FROM reports r
		JOIN users u ON u.id = r.author_id
		LEFT JOIN stores s ON s.id = r.store_id
		WHERE r.id = $1`

	var report entity.ReportWithNames
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.Type, &report.Content, &report.AuthorID, &report.StoreID,
		&report.GeneratedAt, &report.AuthorName, &report.StoreName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}

// GetAll получает отчёты, опционально отфильтрованные по магазину
func (r *reportRepository) GetAll(ctx context.Context, storeID *uuid.UUID) ([]entity.ReportWithNames, error) {
	query := `
		SELECT r.id, r.type, r.content, r.author_id, r.store_id, r.generated_at,
		       u.name AS author_name, COALESCE(s.name, '') AS store_name
		FROM reports r
		JOIN users u ON u.id = r.author_id
		LEFT JOIN stores s ON s.id = r.store_id`

	args := []interface{}{}
	if storeID != nil {
		query += ` WHERE r.store_id = $1`
		args = append(args, *storeID)
	}
	query += ` ORDER BY r.generated_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	defer rows.Close()

	reports := make([]entity.ReportWithNames, 0)
	for rows.Next() {
		var report entity.ReportWithNames
		if err := rows.Scan(
			&report.ID, &report.Type, &report.Content, &report.AuthorID, &report.StoreID,
			&report.GeneratedAt, &report.AuthorName, &report.StoreName); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// Update обновляет тип и содержимое отчёта
func (r *reportRepository) Update(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE reports
		SET type = $2, content = $3, store_id = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, report.ID, report.Type, report.Content, report.StoreID)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}

// Delete удаляет отчёт
func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}
