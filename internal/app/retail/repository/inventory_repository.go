package repository

import (
	"context"
	"errors"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const inventoryDetailsSelect = `inventory_items.*, ` +
	`products.name AS product_name, products.category AS product_category, products.price AS product_price, ` +
	`stores.name AS store_name`

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository создает новый репозиторий инвентаря
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Create создает строку инвентаря для пары (магазин, товар)
// Повторная вставка той же пары нарушает уникальный индекс и переводится
// в доменную ошибку конфликта
func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	result := r.db.WithContext(ctx).Create(item)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrInventoryExists
		}
		return result.Error
	}
	return nil
}

// GetByID получает строку инвентаря с данными товара и магазина
func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryDetails, error) {
	var item entity.InventoryDetails
	result := r.db.WithContext(ctx).
		Table("inventory_items").
		Select(inventoryDetailsSelect).
		Joins("JOIN products ON products.id = inventory_items.product_id").
		Joins("JOIN stores ON stores.id = inventory_items.store_id").
		Where("inventory_items.id = ?", id).
		Take(&item)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, result.Error
	}

	return &item, nil
}

// GetByStore получает весь инвентарь одного магазина
func (r *inventoryRepository) GetByStore(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryDetails, error) {
	var items []entity.InventoryDetails
	result := r.db.WithContext(ctx).
		Table("inventory_items").
		Select(inventoryDetailsSelect).
		Joins("JOIN products ON products.id = inventory_items.product_id").
		Joins("JOIN stores ON stores.id = inventory_items.store_id").
		Where("inventory_items.store_id = ?", storeID).
		Order("products.name ASC").
		Scan(&items)

	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// Update обновляет остаток и порог строки инвентаря
func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	result := r.db.WithContext(ctx).Model(item).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"quantity":            item.Quantity,
		"low_stock_threshold": item.LowStockThreshold,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrInventoryNotFound
	}

	return nil
}

// Delete удаляет строку инвентаря
func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.InventoryItem{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrInventoryNotFound
	}

	return nil
}

// LowStock возвращает строки инвентаря магазина с остатком ниже порога
// threshold == nil - используется порог каждой строки,
// иначе явный порог из запроса
func (r *inventoryRepository) LowStock(ctx context.Context, storeID uuid.UUID, threshold *int) ([]entity.InventoryDetails, error) {
	query := r.db.WithContext(ctx).
		Table("inventory_items").
		Select(inventoryDetailsSelect).
		Joins("JOIN products ON products.id = inventory_items.product_id").
		Joins("JOIN stores ON stores.id = inventory_items.store_id").
		Where("inventory_items.store_id = ?", storeID)

	if threshold != nil {
		query = query.Where("inventory_items.quantity < ?", *threshold)
	} else {
		query = query.Where("inventory_items.quantity < inventory_items.low_stock_threshold")
	}

	var items []entity.InventoryDetails
	result := query.Order("inventory_items.quantity ASC").Scan(&items)

	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}
