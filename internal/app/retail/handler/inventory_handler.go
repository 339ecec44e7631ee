package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/service"
)

type InventoryHandler struct {
	inventoryService service.InventoryServiceInterface
	validator        *validator.Validate
}

func NewInventoryHandler(inventoryService service.InventoryServiceInterface) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		validator:        validator.New(),
	}
}

// CreateItem обрабатывает POST /api/inventory
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req entity.CreateInventoryItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Store not found",
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Product not found",
			})
		case errors.Is(err, service.ErrInventoryExists):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Product already present in store inventory",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create inventory item",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItem обрабатывает GET /api/inventory/:id
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid inventory item ID",
		})
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Inventory item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get inventory item",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetStoreInventory обрабатывает GET /api/inventory/store/:storeId
func (h *InventoryHandler) GetStoreInventory(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	items, err := h.inventoryService.GetStoreInventory(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Store not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get store inventory",
		})
		return
	}

	c.JSON(http.StatusOK, entity.InventoryListResponse{
		Items: items,
		Total: len(items),
	})
}

// GetLowStock обрабатывает GET /api/inventory/low-stock/:storeId
// Необязательный query параметр threshold задает единый порог вместо
// порогов отдельных строк
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	var threshold *int
	if raw := c.Query("threshold"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Invalid threshold value",
			})
			return
		}
		threshold = &value
	}

	items, err := h.inventoryService.GetLowStock(c.Request.Context(), storeID, threshold)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Store not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get low stock items",
		})
		return
	}

	resp := entity.LowStockResponse{
		Products: items,
		Total:    len(items),
	}
	if threshold != nil {
		resp.Threshold = *threshold
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateItem обрабатывает PUT /api/inventory/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid inventory item ID",
		})
		return
	}

	var req entity.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Inventory item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to update inventory item",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem обрабатывает DELETE /api/inventory/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid inventory item ID",
		})
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Inventory item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to delete inventory item",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Inventory item deleted successfully"})
}
