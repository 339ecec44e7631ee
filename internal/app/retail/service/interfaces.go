package service

import (
	"context"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
)

// Интерфейсы сервисов для handlers и тестирования

type AuthServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string, userID uuid.UUID) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *entity.UpdateUserRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetProducts(ctx context.Context) ([]entity.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type StoreServiceInterface interface {
	CreateStore(ctx context.Context, req *entity.CreateStoreRequest) (*entity.Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*entity.StoreWithOwner, error)
	GetStores(ctx context.Context) ([]entity.StoreWithOwner, error)
	UpdateStore(ctx context.Context, id uuid.UUID, req *entity.UpdateStoreRequest) (*entity.Store, error)
	DeleteStore(ctx context.Context, id uuid.UUID) error
}

type InventoryServiceInterface interface {
	CreateItem(ctx context.Context, req *entity.CreateInventoryItemRequest) (*entity.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryDetails, error)
	GetStoreInventory(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryDetails, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req *entity.UpdateInventoryItemRequest) (*entity.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	GetLowStock(ctx context.Context, storeID uuid.UUID, threshold *int) ([]entity.InventoryDetails, error)
}

type SaleServiceInterface interface {
	RegisterSale(ctx context.Context, req *entity.RegisterSaleRequest) (*entity.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleDetails, error)
	GetSales(ctx context.Context) ([]entity.SaleSummary, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
}

type DashboardServiceInterface interface {
	GetSummary(ctx context.Context) (*entity.DashboardSummary, error)
	GetSalesLastDays(ctx context.Context, days int) ([]entity.DailySales, error)
}

type LowStockReportServiceInterface interface {
	GenerateReports(ctx context.Context) error
}

type ReportServiceInterface interface {
	CreateReport(ctx context.Context, req *entity.CreateReportRequest) (*entity.Report, error)
	GetReport(ctx context.Context, id uuid.UUID) (*entity.ReportWithNames, error)
	GetReports(ctx context.Context, storeID *uuid.UUID) ([]entity.ReportWithNames, error)
	UpdateReport(ctx context.Context, id uuid.UUID, req *entity.UpdateReportRequest) (*entity.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
	RenderReport(ctx context.Context, id uuid.UUID) (filename string, content string, err error)
}
