package service

import "errors"

// serviceName используется как фиксированная метка в метриках
const serviceName = "lingonberry"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserExists          = errors.New("user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInUse        = errors.New("product is referenced by existing sales")
	ErrStoreNotFound       = errors.New("store not found")
	ErrStoreInUse          = errors.New("store is referenced by existing records")
	ErrUserInUse           = errors.New("user is referenced by existing records")
	ErrInventoryNotFound   = errors.New("inventory item not found")
	ErrInventoryExists     = errors.New("product already present in store inventory")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrReportNotFound      = errors.New("report not found")
)
