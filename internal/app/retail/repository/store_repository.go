package repository

import (
	"context"
	"errors"
	"fmt"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository создает новый репозиторий магазинов
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create создает новый магазин
func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	result := r.db.WithContext(ctx).Create(store)
	return result.Error
}

// GetByID получает магазин с именем владельца
func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StoreWithOwner, error) {
	var store entity.StoreWithOwner
	result := r.db.WithContext(ctx).
		Table("stores").
		Select("stores.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = stores.owner_id").
		Where("stores.id = ?", id).
		Take(&store)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, result.Error
	}

	return &store, nil
}

// GetAll получает все магазины с именами владельцев
func (r *storeRepository) GetAll(ctx context.Context) ([]entity.StoreWithOwner, error) {
	var stores []entity.StoreWithOwner
	result := r.db.WithContext(ctx).
		Table("stores").
		Select("stores.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = stores.owner_id").
		Order("stores.created_at DESC").
		Scan(&stores)

	if result.Error != nil {
		return nil, result.Error
	}

	return stores, nil
}

// Update обновляет магазин
func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	result := r.db.WithContext(ctx).Model(store).Where("id = ?", store.ID).Updates(map[string]interface{}{
		"name":     store.Name,
		"address":  store.Address,
		"owner_id": store.OwnerID,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStoreNotFound
	}

	return nil
}

// Delete удаляет магазин
// Магазин с продажами, инвентарём или отчётами удалить нельзя:
// нарушение foreign key переводится в доменную ошибку
func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Store{}, "id = ?", id)

	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrStoreReferenced, id)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStoreNotFound
	}

	return nil
}
