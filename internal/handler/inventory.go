package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/middleware"
)

type InventoryHandler struct {
	inventory InventoryService
}

func NewInventoryHandler(inventory InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) Upsert(c *gin.Context) {
	var req dto.UpsertInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.inventory.Upsert(c.Request.Context(), middleware.GetUserID(c), req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory updated", "inventory": toInventoryResponse(rec)})
}

func (h *InventoryHandler) List(c *gin.Context) {
	records, err := h.inventory.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.InventoryResponse, 0, len(records))
	for i := range records {
		out = append(out, toInventoryResponse(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{"inventory": out})
}

func (h *InventoryHandler) Modify(c *gin.Context) {
	var req dto.UpdateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.inventory.Modify(c.Request.Context(), middleware.GetUserID(c), c.Param("productId"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory modified", "inventory": toInventoryResponse(rec)})
}

func (h *InventoryHandler) Remove(c *gin.Context) {
	if err := h.inventory.Remove(c.Request.Context(), middleware.GetUserID(c), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory removed"})
}
