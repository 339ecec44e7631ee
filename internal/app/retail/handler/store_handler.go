package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/service"
)

type StoreHandler struct {
	storeService service.StoreServiceInterface
	validator    *validator.Validate
}

func NewStoreHandler(storeService service.StoreServiceInterface) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validator:    validator.New(),
	}
}

// CreateStore обрабатывает POST /api/stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req entity.CreateStoreRequest

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

	store, err := h.storeService.CreateStore(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Owner not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to create store",
		})
		return
	}

	c.JSON(http.StatusCreated, store)
}

// GetStore обрабатывает GET /api/stores/:id
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	store, err := h.storeService.GetStore(c.Request.Context(), id)
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
			"message": "Failed to get store",
		})
		return
	}

	c.JSON(http.StatusOK, store)
}

// GetStores обрабатывает GET /api/stores
func (h *StoreHandler) GetStores(c *gin.Context) {
	stores, err := h.storeService.GetStores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get stores",
		})
		return
	}

	c.JSON(http.StatusOK, entity.StoreListResponse{
		Stores: stores,
		Total:  len(stores),
	})
}

// UpdateStore обрабатывает PUT /api/stores/:id
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	var req entity.UpdateStoreRequest
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

	store, err := h.storeService.UpdateStore(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Store not found",
			})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Owner not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to update store",
			})
		}
		return
	}

	c.JSON(http.StatusOK, store)
}

// DeleteStore обрабатывает DELETE /api/stores/:id
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	if err := h.storeService.DeleteStore(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Store not found",
			})
		case errors.Is(err, service.ErrStoreInUse):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Store is referenced by sales, inventory or reports",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to delete store",
			})
		}
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Store deleted successfully"})
}
