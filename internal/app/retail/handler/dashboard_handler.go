package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardServiceInterface
}

func NewDashboardHandler(dashboardService service.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary обрабатывает GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get dashboard summary",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetSalesLastDays обрабатывает GET /api/dashboard/sales-last-7-days
// Необязательный query параметр days меняет глубину выборки
func (h *DashboardHandler) GetSalesLastDays(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 || value > 90 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Invalid days value",
			})
			return
		}
		days = value
	}

	daily, err := h.dashboardService.GetSalesLastDays(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get daily sales",
		})
		return
	}

	c.JSON(http.StatusOK, entity.DailySalesResponse{
		Days:  daily,
		Total: len(daily),
	})
}
