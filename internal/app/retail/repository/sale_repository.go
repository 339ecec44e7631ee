package repository

import (
	"context"
	"errors"
	"fmt"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository создает новый репозиторий продаж
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithItems регистрирует продажу в одной транзакции:
// заголовок, затем для каждой позиции атомарное условное списание остатка
// и вставка строки позиции. UPDATE с условием quantity >= ? берет блокировку
// строки инвентаря, поэтому две конкурентные продажи не могут увести остаток
// в минус. Ноль затронутых строк означает нехватку остатка либо отсутствие
// товара в инвентаре магазина; вся транзакция откатывается
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		for i := range sale.Items {
			item := &sale.Items[i]

			result := tx.Model(&entity.InventoryItem{}).
				Where("store_id = ? AND product_id = ? AND quantity >= ?",
					sale.StoreID, item.ProductID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}

			if result.RowsAffected == 0 {
				// Различаем отсутствие строки инвентаря и нехватку остатка
				var count int64
				if err := tx.Model(&entity.InventoryItem{}).
					Where("store_id = ? AND product_id = ?", sale.StoreID, item.ProductID).
					Count(&count).Error; err != nil {
					return fmt.Errorf("failed to check inventory: %w", err)
				}
				if count == 0 {
					return fmt.Errorf("%w: product %s", ErrInventoryNotFound, item.ProductID)
				}
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
			}

			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("failed to create sale item: %w", err)
			}
		}

		return nil
	})
}

// DeleteWithRestock удаляет продажу в одной транзакции:
// возвращает остатки по каждой позиции, удаляет позиции, затем заголовок.
// Если строка инвентаря была удалена после продажи, она создается заново
// с возвращаемым количеством - восстановление остатка всегда полное
func (r *saleRepository) DeleteWithRestock(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale entity.Sale
		if err := tx.First(&sale, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return fmt.Errorf("failed to get sale: %w", err)
		}

		var items []entity.SaleItem
		if err := tx.Where("sale_id = ?", id).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to get sale items: %w", err)
		}

		for _, item := range items {
			result := tx.Model(&entity.InventoryItem{}).
				Where("store_id = ? AND product_id = ?", sale.StoreID, item.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to restore stock: %w", result.Error)
			}

			if result.RowsAffected == 0 {
				restored := entity.InventoryItem{
					ID:        uuid.New(),
					StoreID:   sale.StoreID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				}
				if err := tx.Create(&restored).Error; err != nil {
					return fmt.Errorf("failed to recreate inventory item: %w", err)
				}
			}
		}

		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete sale items: %w", err)
		}

		result := tx.Delete(&entity.Sale{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete sale: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSaleNotFound
		}

		return nil
	})
}

// GetByID получает продажу с позициями и связанными именами
func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleDetails, error) {
	var sale entity.Sale
	result := r.db.WithContext(ctx).First(&sale, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, result.Error
	}

	details := &entity.SaleDetails{Sale: sale}

	row := r.db.WithContext(ctx).
		Table("sales").
		Select("users.name AS user_name, stores.name AS store_name").
		Joins("JOIN users ON users.id = sales.user_id").
		Joins("JOIN stores ON stores.id = sales.store_id").
		Where("sales.id = ?", id).
		Row()
	if err := row.Scan(&details.UserName, &details.StoreName); err != nil {
		return nil, fmt.Errorf("failed to get sale names: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Table("sale_items").
		Select("sale_items.*, products.name AS product_name").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sale_items.sale_id = ?", id).
		Scan(&details.Details).Error; err != nil {
		return nil, err
	}

	if details.Details == nil {
		details.Details = []entity.SaleItemDetails{}
	}

	return details, nil
}

// GetAll получает все продажи с именами пользователя и магазина
func (r *saleRepository) GetAll(ctx context.Context) ([]entity.SaleSummary, error) {
	var sales []entity.SaleSummary
	result := r.db.WithContext(ctx).
		Table("sales").
		Select("sales.id, sales.total, sales.created_at, users.name AS user_name, stores.name AS store_name").
		Joins("JOIN users ON users.id = sales.user_id").
		Joins("JOIN stores ON stores.id = sales.store_id").
		Order("sales.created_at DESC").
		Scan(&sales)

	if result.Error != nil {
		return nil, result.Error
	}

	return sales, nil
}
