package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/middleware"
)

type OrderHandler struct {
	orderService OrderService
	ids          CallerResolver
}

func NewOrderHandler(orderService OrderService, ids CallerResolver) *OrderHandler {
	return &OrderHandler{orderService: orderService, ids: ids}
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, err := h.ids.Caller(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), *caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	items := toOrderResponses(orders)
	c.JSON(http.StatusOK, dto.OrderListResponse{Orders: items, Total: len(items)})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := uuidParam(c, "orderId")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, err := h.ids.Caller(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), *caller, orderID, req.OrderStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order updated", "order": toOrderResponse(order)})
}
