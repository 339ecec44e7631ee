package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"
	"lingonberry/internal/app/retail/util"
	"lingonberry/pkg/logger"
	"lingonberry/pkg/metrics"

	"github.com/google/uuid"
)

// SaleService обрабатывает бизнес-логику продаж
// Координирует репозитории, кэш дашборда и отправку событий в Kafka
type SaleService struct {
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	storeRepo     repository.StoreRepository
	userRepo      repository.UserRepository
	kafkaProducer util.MessagePublisher
	cache         util.DashboardCache
	kafkaTopic    string
}

// NewSaleService создает новый сервис продаж с внедрением зависимостей
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	kafkaProducer util.MessagePublisher,
	cache util.DashboardCache,
	kafkaTopic string,
) *SaleService {
	return &SaleService{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		storeRepo:     storeRepo,
		userRepo:      userRepo,
		kafkaProducer: kafkaProducer,
		cache:         cache,
		kafkaTopic:    kafkaTopic,
	}
}

// RegisterSale регистрирует продажу
// 1. Проверяет существование пользователя, магазина и всех товаров
// 2. Считает итог как сумму quantity * price по позициям
// 3. Сохраняет заголовок и позиции одной транзакцией со списанием остатков
// 4. Отправляет событие SALE_CREATED в Kafka и сбрасывает кэш дашборда
//
// Проверка остатков целиком внутри транзакции репозитория: предварительного
// чтения остатка здесь нет, поэтому конкурентные продажи не теряют списания
func (s *SaleService) RegisterSale(ctx context.Context, req *entity.RegisterSaleRequest) (*entity.Sale, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	if _, err := s.storeRepo.GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to check store: %w", err)
	}

	for _, line := range req.Products {
		if _, err := s.productRepo.GetByID(ctx, line.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				metrics.SalesRejected.WithLabelValues("product_not_found").Inc()
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, fmt.Errorf("failed to check product: %w", err)
		}
	}

	sale := &entity.Sale{
		ID:        uuid.New(),
		UserID:    req.UserID,
		StoreID:   req.StoreID,
		CreatedAt: time.Now(),
	}

	var total float64
	items := make([]entity.SaleItem, 0, len(req.Products))
	for _, line := range req.Products {
		subtotal := roundMoney(line.Price * float64(line.Quantity))
		items = append(items, entity.SaleItem{
			ID:        uuid.New(),
			SaleID:    sale.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			Subtotal:  subtotal,
		})
		total += subtotal
	}
	sale.Total = roundMoney(total)
	sale.Items = items

	if err := s.saleRepo.CreateWithItems(ctx, sale); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			metrics.SalesRejected.WithLabelValues("insufficient_stock").Inc()
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, err.Error())
		case errors.Is(err, repository.ErrInventoryNotFound):
			metrics.SalesRejected.WithLabelValues("insufficient_stock").Inc()
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, err.Error())
		default:
			return nil, fmt.Errorf("failed to register sale: %w", err)
		}
	}

	metrics.SalesRegistered.Inc()
	metrics.SalesAmount.Add(sale.Total)

	s.publishSaleEvent(ctx, "SALE_CREATED", sale, len(items))
	s.invalidateDashboard(ctx)

	return sale, nil
}

// GetSale получает продажу с позициями
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleDetails, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	return sale, nil
}

// GetSales получает все продажи
func (s *SaleService) GetSales(ctx context.Context) ([]entity.SaleSummary, error) {
	sales, err := s.saleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}

	return sales, nil
}

// DeleteSale удаляет продажу и возвращает остатки в инвентарь
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to get sale: %w", err)
	}

	if err := s.saleRepo.DeleteWithRestock(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	metrics.SalesDeleted.Inc()

	s.publishSaleEvent(ctx, "SALE_DELETED", &sale.Sale, len(sale.Details))
	s.invalidateDashboard(ctx)

	return nil
}

// publishSaleEvent отправляет событие о продаже в Kafka
// Ошибка отправки логируется, но не прерывает операцию: продажа уже зафиксирована
func (s *SaleService) publishSaleEvent(ctx context.Context, eventType string, sale *entity.Sale, itemsCount int) {
	event := entity.SaleEvent{
		EventType:  eventType,
		SaleID:     sale.ID,
		StoreID:    sale.StoreID,
		UserID:     sale.UserID,
		Total:      sale.Total,
		ItemsCount: itemsCount,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal sale event")
		return
	}

	timer := metrics.NewKafkaProduceTimer(serviceName, s.kafkaTopic)
	if err := s.kafkaProducer.PublishMessage(ctx, sale.ID.String(), data); err != nil {
		timer.Error()
		logger.Error().Err(err).
			Str("event_type", eventType).
			Str("sale_id", sale.ID.String()).
			Msg("failed to publish sale event")
		return
	}
	timer.Success()
}

// invalidateDashboard сбрасывает кэш сводки после изменения продаж
func (s *SaleService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.DeleteDashboardSummary(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
