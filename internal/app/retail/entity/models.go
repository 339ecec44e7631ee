package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role представляет роль пользователя в системе
type Role string

const (
	RoleEmployee Role = "employee" // Сотрудник магазина
	RoleAdmin    Role = "admin"    // Администратор
	RoleOwner    Role = "owner"    // Владелец сети
)

// User представляет пользователя системы
// Хранится в PostgreSQL, пароль только в виде bcrypt-хэша
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Product представляет товар каталога
// Остатки товар не хранит: единственный источник истины по остаткам -
// строка инвентаря (store_id, product_id)
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    *string   `json:"category" gorm:"type:varchar(100)"` // Свободный текст, может отсутствовать
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Product) TableName() string {
	return "products"
}

// Store представляет магазин сети
type Store struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	Address   string    `json:"address" gorm:"type:varchar(300);not null"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null"` // Пользователь-владелец
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreWithOwner содержит магазин с именем владельца
type StoreWithOwner struct {
	Store
	OwnerName string `json:"owner_name" gorm:"column:owner_name"`
}

// InventoryItem представляет остаток одного товара в одном магазине
// Пара (store_id, product_id) уникальна; порог низкого остатка настраивается
// на уровне строки, по умолчанию 5
type InventoryItem struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID           uuid.UUID `json:"store_id" gorm:"type:uuid;not null;uniqueIndex:idx_inventory_store_product"`
	ProductID         uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_inventory_store_product"`
	Quantity          int       `json:"quantity" gorm:"not null;check:quantity >= 0"`
	LowStockThreshold int       `json:"low_stock_threshold" gorm:"not null;default:5"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryDetails содержит строку инвентаря с данными товара и магазина
type InventoryDetails struct {
	InventoryItem
	ProductName     string  `json:"product_name" gorm:"column:product_name"`
	ProductCategory *string `json:"product_category" gorm:"column:product_category"`
	ProductPrice    float64 `json:"product_price" gorm:"column:product_price"`
	StoreName       string  `json:"store_name" gorm:"column:store_name"`
}

// Sale представляет заголовок продажи
// Продажа неизменяема после создания, допускается только полное удаление
type Sale struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null"`
	StoreID   uuid.UUID  `json:"store_id" gorm:"type:uuid;not null"`
	Total     float64    `json:"total" gorm:"type:decimal(12,2);not null"` // Сумма subtotal всех позиций на момент создания
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Items     []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Sale) TableName() string {
	return "sales"
}

// SaleItem представляет позицию продажи
// Subtotal хранится явно (денормализация исходной схемы): quantity * unit_price
// на момент создания
type SaleItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID `json:"sale_id" gorm:"type:uuid;not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Subtotal  float64   `json:"subtotal" gorm:"type:decimal(12,2);not null"`
}

func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleSummary - строка списка продаж с именами пользователя и магазина
type SaleSummary struct {
	ID        uuid.UUID `json:"id" gorm:"column:id"`
	Total     float64   `json:"total" gorm:"column:total"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UserName  string    `json:"user_name" gorm:"column:user_name"`
	StoreName string    `json:"store_name" gorm:"column:store_name"`
}

// SaleItemDetails - позиция продажи с именем товара
type SaleItemDetails struct {
	SaleItem
	ProductName string `json:"product_name" gorm:"column:product_name"`
}

// SaleDetails содержит продажу с позициями и связанными именами
type SaleDetails struct {
	Sale
	UserName  string            `json:"user_name"`
	StoreName string            `json:"store_name"`
	Details   []SaleItemDetails `json:"details"`
}

// Report представляет сохранённый отчёт
type Report struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Type        string     `json:"type" db:"type"`
	Content     string     `json:"content" db:"content"`
	AuthorID    uuid.UUID  `json:"author_id" db:"author_id"`
	StoreID     *uuid.UUID `json:"store_id" db:"store_id"` // Может не относиться к конкретному магазину
	GeneratedAt time.Time  `json:"generated_at" db:"generated_at"`
}

// ReportWithNames содержит отчёт с именами автора и магазина
type ReportWithNames struct {
	Report
	AuthorName string `json:"author_name"`
	StoreName  string `json:"store_name"` // Пустая строка, если отчёт без магазина
}

// SaleEvent представляет событие о продаже для Kafka
type SaleEvent struct {
	EventType  string    `json:"event_type"` // SALE_CREATED, SALE_DELETED
	SaleID     uuid.UUID `json:"sale_id"`
	StoreID    uuid.UUID `json:"store_id"`
	UserID     uuid.UUID `json:"user_id"`
	Total      float64   `json:"total"`
	ItemsCount int       `json:"items_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// === Модели дашборда ===

// MonthSales - итоги продаж текущего месяца
type MonthSales struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// TopProduct - самый продаваемый товар месяца
// Нулевое значение означает отсутствие продаж
type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
}

// LowStockEntry - товар с остатком ниже порога
type LowStockEntry struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	StoreID     uuid.UUID `json:"store_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Threshold   int       `json:"threshold"`
}

// StoreSales - итоги продаж одного магазина за месяц
type StoreSales struct {
	StoreID   uuid.UUID `json:"store_id"`
	StoreName string    `json:"store_name"`
	Total     float64   `json:"total"`
}

// DailySales - итоги продаж за один день
type DailySales struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
	Count int64     `json:"count"`
}

// DashboardSummary - сводка дашборда за текущий месяц
// Все поля присутствуют всегда: отсутствие данных даёт нули и пустые массивы,
// форма ответа не зависит от количества строк
type DashboardSummary struct {
	MonthSales         MonthSales      `json:"month_sales"`
	UnitsSold          int64           `json:"units_sold"`
	BestSellingProduct TopProduct      `json:"best_selling_product"`
	LowStockProducts   []LowStockEntry `json:"low_stock_products"`
	TotalUsers         int64           `json:"total_users"`
	SalesByStore       []StoreSales    `json:"sales_by_store"`
}
