package service

import (
	"context"
	"errors"
	"testing"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLowStockReportServiceForTest() (*LowStockReportService, *mocks.MockStoreRepository, *mocks.MockInventoryRepository, *mocks.MockReportRepository) {
	storeRepo := new(mocks.MockStoreRepository)
	inventoryRepo := new(mocks.MockInventoryRepository)
	reportRepo := new(mocks.MockReportRepository)

	return NewLowStockReportService(storeRepo, inventoryRepo, reportRepo), storeRepo, inventoryRepo, reportRepo
}

func lowStockItem(name string, quantity, threshold int) entity.InventoryDetails {
	return entity.InventoryDetails{
		InventoryItem: entity.InventoryItem{
			ID:                uuid.New(),
			Quantity:          quantity,
			LowStockThreshold: threshold,
		},
		ProductName: name,
	}
}

func TestGenerateReports_AuthorIsStoreOwner(t *testing.T) {
	svc, storeRepo, inventoryRepo, reportRepo := newLowStockReportServiceForTest()

	ownerID := uuid.New()
	store := entity.StoreWithOwner{
		Store: entity.Store{ID: uuid.New(), Name: "Центральный", OwnerID: ownerID},
	}

	storeRepo.On("GetAll", mock.Anything).Return([]entity.StoreWithOwner{store}, nil)
	inventoryRepo.On("LowStock", mock.Anything, store.ID, (*int)(nil)).
		Return([]entity.InventoryDetails{lowStockItem("Хлеб", 2, 5)}, nil)

	var saved *entity.Report
	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.Report)
		}).
		Return(nil)

	err := svc.GenerateReports(context.Background())

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, ownerID, saved.AuthorID)
	assert.Equal(t, lowStockReportType, saved.Type)
	require.NotNil(t, saved.StoreID)
	assert.Equal(t, store.ID, *saved.StoreID)
	assert.Contains(t, saved.Content, "Хлеб")
	assert.Contains(t, saved.Content, "2 left")
}

func TestGenerateReports_SkipsStoresWithoutLowStock(t *testing.T) {
	svc, storeRepo, inventoryRepo, reportRepo := newLowStockReportServiceForTest()

	store := entity.StoreWithOwner{
		Store: entity.Store{ID: uuid.New(), Name: "Пустой", OwnerID: uuid.New()},
	}

	storeRepo.On("GetAll", mock.Anything).Return([]entity.StoreWithOwner{store}, nil)
	inventoryRepo.On("LowStock", mock.Anything, store.ID, (*int)(nil)).
		Return([]entity.InventoryDetails{}, nil)

	err := svc.GenerateReports(context.Background())

	assert.NoError(t, err)
	reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateReports_StoreFailureDoesNotStopOthers(t *testing.T) {
	svc, storeRepo, inventoryRepo, reportRepo := newLowStockReportServiceForTest()

	broken := entity.StoreWithOwner{
		Store: entity.Store{ID: uuid.New(), Name: "Сломанный", OwnerID: uuid.New()},
	}
	healthy := entity.StoreWithOwner{
		Store: entity.Store{ID: uuid.New(), Name: "Рабочий", OwnerID: uuid.New()},
	}

	storeRepo.On("GetAll", mock.Anything).Return([]entity.StoreWithOwner{broken, healthy}, nil)
	inventoryRepo.On("LowStock", mock.Anything, broken.ID, (*int)(nil)).
		Return(nil, errors.New("connection reset"))
	inventoryRepo.On("LowStock", mock.Anything, healthy.ID, (*int)(nil)).
		Return([]entity.InventoryDetails{lowStockItem("Сыр", 1, 5)}, nil)
	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).Return(nil)

	err := svc.GenerateReports(context.Background())

	// Ошибка одного магазина попадает в итог, но не мешает остальным
	assert.Error(t, err)
	reportRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestGenerateReports_StoresUnavailable(t *testing.T) {
	svc, storeRepo, inventoryRepo, _ := newLowStockReportServiceForTest()

	storeRepo.On("GetAll", mock.Anything).Return(nil, errors.New("connection refused"))

	err := svc.GenerateReports(context.Background())

	assert.Error(t, err)
	inventoryRepo.AssertNotCalled(t, "LowStock", mock.Anything, mock.Anything, mock.Anything)
}
