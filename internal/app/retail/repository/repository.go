package repository

import (
	"context"
	"errors"
	"time"

	"lingonberry/internal/app/retail/entity"

	"github.com/google/uuid"
)

// Стандартные ошибки репозиториев для обработки в service layer
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductReferenced = errors.New("product is referenced by sale items")
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreReferenced   = errors.New("store is referenced by dependent rows")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserReferenced    = errors.New("user is referenced by dependent rows")
	ErrEmailExists       = errors.New("user with this email already exists")
	ErrInventoryNotFound = errors.New("inventory item not found")
	ErrInventoryExists   = errors.New("product already present in store inventory")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrReportNotFound    = errors.New("report not found")
	ErrTokenNotFound     = errors.New("refresh token not found")
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StoreWithOwner, error)
	GetAll(ctx context.Context) ([]entity.StoreWithOwner, error)
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryDetails, error)
	GetByStore(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryDetails, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	LowStock(ctx context.Context, storeID uuid.UUID, threshold *int) ([]entity.InventoryDetails, error)
}

// SaleRepository выполняет обе многошаговые операции продаж
// внутри одной транзакции БД: либо все строки и списания видимы, либо никакие
type SaleRepository interface {
	CreateWithItems(ctx context.Context, sale *entity.Sale) error
	DeleteWithRestock(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleDetails, error)
	GetAll(ctx context.Context) ([]entity.SaleSummary, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReportWithNames, error)
	GetAll(ctx context.Context, storeID *uuid.UUID) ([]entity.ReportWithNames, error)
	Update(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DashboardRepository - независимые агрегатные чтения для сводки
// Отсутствие строк не является ошибкой: возвращаются нули и пустые срезы
type DashboardRepository interface {
	MonthSales(ctx context.Context) (entity.MonthSales, error)
	MonthUnitsSold(ctx context.Context) (int64, error)
	MonthTopProduct(ctx context.Context) (*entity.TopProduct, error)
	LowStockTop(ctx context.Context, limit int) ([]entity.LowStockEntry, error)
	CountUsers(ctx context.Context) (int64, error)
	MonthSalesByStore(ctx context.Context, limit int) ([]entity.StoreSales, error)
	SalesLastDays(ctx context.Context, days int) ([]entity.DailySales, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (uuid.UUID, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
	AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
