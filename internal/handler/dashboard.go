package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/middleware"
	"github.com/flicky/swiftora-api/internal/service"
)

type DashboardHandler struct {
	dashboards DashboardService
}

func NewDashboardHandler(dashboards DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) Supermarket(c *gin.Context) {
	d, err := h.dashboards.Supermarket(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SupermarketDashboardResponse{
		SupermarketID:  d.SupermarketID,
		AcceptedTieUps: d.AcceptedTieUps,
		PendingTieUps:  d.PendingTieUps,
		TotalOrders:    service.TotalOrders(d.OrdersByStatus),
		OrdersByStatus: d.OrdersByStatus,
		RecentOrders:   toOrderResponses(d.RecentOrders),
	})
}

func (h *DashboardHandler) Supplier(c *gin.Context) {
	d, err := h.dashboards.Supplier(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SupplierDashboardResponse{
		SupplierID:       d.SupplierID,
		ProductCount:     d.ProductCount,
		TotalOrders:      service.TotalOrders(d.OrdersByStatus),
		OrdersByStatus:   d.OrdersByStatus,
		TiedSupermarkets: d.TiedSupermarkets,
		PendingRequests:  d.PendingRequests,
		Stock:            toStockSummaryResponse(d.Stock),
		RecentOrders:     toOrderResponses(d.RecentOrders),
	})
}
