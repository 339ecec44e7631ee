package service

import (
	"context"
	"testing"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"
	"lingonberry/internal/app/retail/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInventoryServiceForTest() (*InventoryService, *mocks.MockInventoryRepository, *mocks.MockStoreRepository, *mocks.MockProductRepository) {
	inventoryRepo := new(mocks.MockInventoryRepository)
	storeRepo := new(mocks.MockStoreRepository)
	productRepo := new(mocks.MockProductRepository)

	return NewInventoryService(inventoryRepo, storeRepo, productRepo), inventoryRepo, storeRepo, productRepo
}

func TestCreateInventoryItem_DefaultThreshold(t *testing.T) {
	svc, inventoryRepo, storeRepo, productRepo := newInventoryServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	productID := uuid.New()

	storeRepo.On("GetByID", ctx, storeID).Return(&entity.StoreWithOwner{Store: entity.Store{ID: storeID}}, nil)
	productRepo.On("GetByID", ctx, productID).Return(&entity.Product{ID: productID}, nil)
	inventoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.InventoryItem")).Return(nil)

	item, err := svc.CreateItem(ctx, &entity.CreateInventoryItemRequest{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  20,
	})

	assert.NoError(t, err)
	assert.Equal(t, 20, item.Quantity)
	assert.Equal(t, defaultLowStockThreshold, item.LowStockThreshold)
}

func TestCreateInventoryItem_CustomThreshold(t *testing.T) {
	svc, inventoryRepo, storeRepo, productRepo := newInventoryServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	productID := uuid.New()
	threshold := 12

	storeRepo.On("GetByID", ctx, storeID).Return(&entity.StoreWithOwner{Store: entity.Store{ID: storeID}}, nil)
	productRepo.On("GetByID", ctx, productID).Return(&entity.Product{ID: productID}, nil)
	inventoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.InventoryItem")).Return(nil)

	item, err := svc.CreateItem(ctx, &entity.CreateInventoryItemRequest{
		StoreID:           storeID,
		ProductID:         productID,
		Quantity:          0,
		LowStockThreshold: &threshold,
	})

	assert.NoError(t, err)
	assert.Equal(t, 12, item.LowStockThreshold)
}

func TestCreateInventoryItem_Duplicate(t *testing.T) {
	svc, inventoryRepo, storeRepo, productRepo := newInventoryServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	productID := uuid.New()

	storeRepo.On("GetByID", ctx, storeID).Return(&entity.StoreWithOwner{Store: entity.Store{ID: storeID}}, nil)
	productRepo.On("GetByID", ctx, productID).Return(&entity.Product{ID: productID}, nil)
	inventoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.InventoryItem")).Return(repository.ErrInventoryExists)

	item, err := svc.CreateItem(ctx, &entity.CreateInventoryItemRequest{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  5,
	})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrInventoryExists)
}

func TestGetLowStock_PassesThreshold(t *testing.T) {
	svc, inventoryRepo, storeRepo, _ := newInventoryServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	threshold := 10

	expected := []entity.InventoryDetails{
		{InventoryItem: entity.InventoryItem{ID: uuid.New(), Quantity: 3}},
	}

	storeRepo.On("GetByID", ctx, storeID).Return(&entity.StoreWithOwner{Store: entity.Store{ID: storeID}}, nil)
	inventoryRepo.On("LowStock", ctx, storeID, &threshold).Return(expected, nil)

	items, err := svc.GetLowStock(ctx, storeID, &threshold)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	inventoryRepo.AssertCalled(t, "LowStock", ctx, storeID, &threshold)
}

func TestGetLowStock_UnknownStore(t *testing.T) {
	svc, inventoryRepo, storeRepo, _ := newInventoryServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()

	storeRepo.On("GetByID", ctx, storeID).Return(nil, repository.ErrStoreNotFound)

	items, err := svc.GetLowStock(ctx, storeID, nil)

	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrStoreNotFound)
	inventoryRepo.AssertNotCalled(t, "LowStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateInventoryItem_SetsAbsoluteQuantity(t *testing.T) {
	svc, inventoryRepo, _, _ := newInventoryServiceForTest()

	ctx := context.Background()
	itemID := uuid.New()
	quantity := 42

	details := &entity.InventoryDetails{
		InventoryItem: entity.InventoryItem{ID: itemID, Quantity: 7, LowStockThreshold: 5},
	}

	inventoryRepo.On("GetByID", ctx, itemID).Return(details, nil)
	inventoryRepo.On("Update", ctx, mock.AnythingOfType("*entity.InventoryItem")).Return(nil)

	item, err := svc.UpdateItem(ctx, itemID, &entity.UpdateInventoryItemRequest{Quantity: &quantity})

	assert.NoError(t, err)
	assert.Equal(t, 42, item.Quantity)
	assert.Equal(t, 5, item.LowStockThreshold)
}
