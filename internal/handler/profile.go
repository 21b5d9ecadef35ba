package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/middleware"
)

type ProfileHandler struct {
	profiles ProfileService
}

func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) CreateSupplier(c *gin.Context) {
	var req dto.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.CreateSupplier(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSupplierResponse(p))
}

func (h *ProfileHandler) MySupplier(c *gin.Context) {
	p, err := h.profiles.MySupplier(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSupplierResponse(p))
}

func (h *ProfileHandler) UpdateSupplier(c *gin.Context) {
	supplierID, ok := uuidParam(c, "supplierId")
	if !ok {
		return
	}
	var req dto.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.UpdateSupplier(c.Request.Context(), middleware.GetUserID(c), supplierID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSupplierResponse(p))
}

func (h *ProfileHandler) CreateSupermarket(c *gin.Context) {
	var req dto.SupermarketRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.CreateSupermarket(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSupermarketResponse(p))
}

func (h *ProfileHandler) MySupermarket(c *gin.Context) {
	p, err := h.profiles.MySupermarket(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSupermarketResponse(p))
}

func (h *ProfileHandler) UpdateSupermarket(c *gin.Context) {
	supermarketID, ok := uuidParam(c, "supermarketId")
	if !ok {
		return
	}
	var req dto.SupermarketRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.UpdateSupermarket(c.Request.Context(), middleware.GetUserID(c), supermarketID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSupermarketResponse(p))
}

func (h *ProfileHandler) DeleteSupermarket(c *gin.Context) {
	supermarketID, ok := uuidParam(c, "supermarketId")
	if !ok {
		return
	}

	if err := h.profiles.DeleteSupermarket(c.Request.Context(), middleware.GetUserID(c), supermarketID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supermarket deleted"})
}
