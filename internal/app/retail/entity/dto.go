package entity

import "github.com/google/uuid"

// === Auth ===

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Секунды жизни access токена
}

type AuthResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// === Users ===

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=employee admin owner"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"` // Пустая строка - пароль не меняется
	Role     Role   `json:"role" validate:"required,oneof=employee admin owner"`
}

// === Products ===

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// === Stores ===

type CreateStoreRequest struct {
	Name    string    `json:"name" validate:"required,min=2,max=200"`
	Address string    `json:"address" validate:"required,max=300"`
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
}

type UpdateStoreRequest struct {
	Name    string    `json:"name" validate:"required,min=2,max=200"`
	Address string    `json:"address" validate:"required,max=300"`
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
}

// === Inventory ===

type CreateInventoryItemRequest struct {
	StoreID           uuid.UUID `json:"store_id" validate:"required"`
	ProductID         uuid.UUID `json:"product_id" validate:"required"`
	Quantity          int       `json:"quantity" validate:"gte=0"`
	LowStockThreshold *int      `json:"low_stock_threshold" validate:"omitempty,gte=0"` // nil - порог по умолчанию
}

type UpdateInventoryItemRequest struct {
	Quantity          *int `json:"quantity" validate:"required,gte=0"`
	LowStockThreshold *int `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

// === Sales ===

// RegisterSaleRequest - запрос регистрации продажи
// Цена позиции передаётся вызывающей стороной и не перечитывается из каталога
type RegisterSaleRequest struct {
	UserID   uuid.UUID         `json:"user_id" validate:"required"`
	StoreID  uuid.UUID         `json:"store_id" validate:"required"`
	Products []SaleLineRequest `json:"products" validate:"required,min=1,dive"`
}

type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}

type RegisterSaleResponse struct {
	Success bool      `json:"success"`
	SaleID  uuid.UUID `json:"sale_id"`
}

// === Reports ===

type CreateReportRequest struct {
	Type     string     `json:"type" validate:"required,max=100"`
	Content  string     `json:"content" validate:"required"`
	AuthorID uuid.UUID  `json:"author_id" validate:"required"`
	StoreID  *uuid.UUID `json:"store_id"`
}

type UpdateReportRequest struct {
	Type    string     `json:"type" validate:"omitempty,max=100"`
	Content string     `json:"content" validate:"omitempty"`
	StoreID *uuid.UUID `json:"store_id"`
}

// === Общие формы ответов ===

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type StoreListResponse struct {
	Stores []StoreWithOwner `json:"stores"`
	Total  int              `json:"total"`
}

type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type InventoryListResponse struct {
	Items []InventoryDetails `json:"items"`
	Total int                `json:"total"`
}

// LowStockResponse всегда содержит массив, возможно пустой
type LowStockResponse struct {
	Products  []InventoryDetails `json:"products"`
	Total     int                `json:"total"`
	Threshold int                `json:"threshold,omitempty"` // Заполняется при явном пороге из запроса
}

type SaleListResponse struct {
	Sales []SaleSummary `json:"sales"`
	Total int           `json:"total"`
}

type ReportListResponse struct {
	Reports []ReportWithNames `json:"reports"`
	Total   int               `json:"total"`
}

type DailySalesResponse struct {
	Days  []DailySales `json:"days"`
	Total int          `json:"total"`
}

type CategoryListResponse struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}
