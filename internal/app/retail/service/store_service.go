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

// StoreService обрабатывает бизнес-логику магазинов
type StoreService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
}

// NewStoreService создает новый сервис магазинов
func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		userRepo:  userRepo,
	}
}

// CreateStore создает новый магазин
// Владелец должен существовать
func (s *StoreService) CreateStore(ctx context.Context, req *entity.CreateStoreRequest) (*entity.Store, error) {
	if _, err := s.userRepo.GetByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}

	store := &entity.Store{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		OwnerID:   req.OwnerID,
		CreatedAt: time.Now(),
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

// GetStore получает магазин с именем владельца
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*entity.StoreWithOwner, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	return store, nil
}

// GetStores получает все магазины
func (s *StoreService) GetStores(ctx context.Context) ([]entity.StoreWithOwner, error) {
	stores, err := s.storeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stores: %w", err)
	}

	return stores, nil
}

// UpdateStore обновляет магазин
func (s *StoreService) UpdateStore(ctx context.Context, id uuid.UUID, req *entity.UpdateStoreRequest) (*entity.Store, error) {
	existing, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	if _, err := s.userRepo.GetByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}

	store := existing.Store
	store.Name = req.Name
	store.Address = req.Address
	store.OwnerID = req.OwnerID

	if err := s.storeRepo.Update(ctx, &store); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return &store, nil
}

// DeleteStore удаляет магазин
// Магазин, на который ссылаются продажи, инвентарь или отчёты, удалить нельзя
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if err := s.storeRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrStoreNotFound):
			return ErrStoreNotFound
		case errors.Is(err, repository.ErrStoreReferenced):
			return ErrStoreInUse
		default:
			return fmt.Errorf("failed to delete store: %w", err)
		}
	}

	return nil
}
