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

// defaultLowStockThreshold применяется к строке инвентаря,
// если порог не задан явно
const defaultLowStockThreshold = 5

// InventoryService обрабатывает бизнес-логику остатков
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
}

// NewInventoryService создает новый сервис остатков
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
	}
}

// CreateItem заводит товар в инвентаре магазина
// Пара (магазин, товар) уникальна, повторное создание отклоняется
func (s *InventoryService) CreateItem(ctx context.Context, req *entity.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	if _, err := s.storeRepo.GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to check store: %w", err)
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to check product: %w", err)
	}

	threshold := defaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	item := &entity.InventoryItem{
		ID:                uuid.New(),
		StoreID:           req.StoreID,
		ProductID:         req.ProductID,
		Quantity:          req.Quantity,
		LowStockThreshold: threshold,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrInventoryExists) {
			return nil, ErrInventoryExists
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// GetItem получает строку инвентаря с данными товара и магазина
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryDetails, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

// GetStoreInventory получает все остатки магазина
func (s *InventoryService) GetStoreInventory(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryDetails, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to check store: %w", err)
	}

	items, err := s.inventoryRepo.GetByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store inventory: %w", err)
	}

	return items, nil
}

// UpdateItem устанавливает остаток и порог строки инвентаря
// Остаток задается абсолютным значением, не дельтой: ручная корректировка
// после инвентаризации перекрывает текущее значение
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req *entity.UpdateInventoryItemRequest) (*entity.InventoryItem, error) {
	details, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	item := details.InventoryItem
	item.Quantity = *req.Quantity
	if req.LowStockThreshold != nil {
		item.LowStockThreshold = *req.LowStockThreshold
	}
	item.UpdatedAt = time.Now()

	if err := s.inventoryRepo.Update(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return &item, nil
}

// DeleteItem удаляет строку инвентаря
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return ErrInventoryNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}

// GetLowStock возвращает товары магазина с низким остатком
// threshold nil - сравнение с порогом каждой строки,
// иначе единый порог из запроса
func (s *InventoryService) GetLowStock(ctx context.Context, storeID uuid.UUID, threshold *int) ([]entity.InventoryDetails, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to check store: %w", err)
	}

	items, err := s.inventoryRepo.LowStock(ctx, storeID, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}

	return items, nil
}
