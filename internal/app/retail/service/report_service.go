package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"

	"github.com/google/uuid"
)

// ReportService обрабатывает бизнес-логику отчётов
type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
}

// NewReportService создает новый сервис отчётов
func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		storeRepo:  storeRepo,
	}
}

// CreateReport сохраняет новый отчёт
func (s *ReportService) CreateReport(ctx context.Context, req *entity.CreateReportRequest) (*entity.Report, error) {
	if _, err := s.userRepo.GetByID(ctx, req.AuthorID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check author: %w", err)
	}

	if req.StoreID != nil {
		if _, err := s.storeRepo.GetByID(ctx, *req.StoreID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return nil, ErrStoreNotFound
			}
			return nil, fmt.Errorf("failed to check store: %w", err)
		}
	}

	report := &entity.Report{
		ID:          uuid.New(),
		Type:        req.Type,
		Content:     req.Content,
		AuthorID:    req.AuthorID,
		StoreID:     req.StoreID,
		GeneratedAt: time.Now(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// GetReport получает отчёт с именами автора и магазина
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*entity.ReportWithNames, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// GetReports получает отчёты, опционально по одному магазину
func (s *ReportService) GetReports(ctx context.Context, storeID *uuid.UUID) ([]entity.ReportWithNames, error) {
	reports, err := s.reportRepo.GetAll(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}

	return reports, nil
}

// UpdateReport обновляет отчёт
// Пустые поля запроса оставляют прежние значения
func (s *ReportService) UpdateReport(ctx context.Context, id uuid.UUID, req *entity.UpdateReportRequest) (*entity.Report, error) {
	existing, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	report := existing.Report
	if req.Type != "" {
		report.Type = req.Type
	}
	if req.Content != "" {
		report.Content = req.Content
	}
	if req.StoreID != nil {
		if _, err := s.storeRepo.GetByID(ctx, *req.StoreID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return nil, ErrStoreNotFound
			}
			return nil, fmt.Errorf("failed to check store: %w", err)
		}
		report.StoreID = req.StoreID
	}

	if err := s.reportRepo.Update(ctx, &report); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return &report, nil
}

// DeleteReport удаляет отчёт
func (s *ReportService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}

// RenderReport готовит отчёт к выгрузке текстовым файлом
func (s *ReportService) RenderReport(ctx context.Context, id uuid.UUID) (string, string, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("report_%s_%s.txt", report.Type, report.GeneratedAt.Format("2006-01-02"))

	header := fmt.Sprintf("Report: %s\nAuthor: %s\n", report.Type, report.AuthorName)
	if report.StoreName != "" {
		header += fmt.Sprintf("Store: %s\n", report.StoreName)
	}
	header += fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	return filename, header + report.Content, nil
}
