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

type SaleHandler struct {
	saleService service.SaleServiceInterface
	validator   *validator.Validate
}

func NewSaleHandler(saleService service.SaleServiceInterface) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		validator:   validator.New(),
	}
}

// RegisterSale обрабатывает POST /api/sales
// Нехватка остатка по любой позиции отклоняет продажу целиком
func (h *SaleHandler) RegisterSale(c *gin.Context) {
	var req entity.RegisterSaleRequest

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

	sale, err := h.saleService.RegisterSale(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "User not found",
			})
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Store not found",
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to register sale",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, entity.RegisterSaleResponse{
		Success: true,
		SaleID:  sale.ID,
	})
}

// GetSale обрабатывает GET /api/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid sale ID",
		})
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Sale not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get sale",
		})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// GetSales обрабатывает GET /api/sales
func (h *SaleHandler) GetSales(c *gin.Context) {
	sales, err := h.saleService.GetSales(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get sales",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SaleListResponse{
		Sales: sales,
		Total: len(sales),
	})
}

// DeleteSale обрабатывает DELETE /api/sales/:id
// Удаление возвращает остатки всех позиций в инвентарь магазина
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid sale ID",
		})
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Sale not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to delete sale",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Sale deleted successfully"})
}
