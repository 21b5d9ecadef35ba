package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/middleware"
)

// ProductHandler serves the calling supplier's own catalog.
type ProductHandler struct {
	productService ProductService
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.productService.Add(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products)})
}

func (h *ProductHandler) GetBySKU(c *gin.Context) {
	p, err := h.productService.GetBySKU(c.Request.Context(), middleware.GetUserID(c), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	p, err := h.productService.GetByBarcode(c.Request.Context(), middleware.GetUserID(c), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) UpdateBySKU(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.productService.UpdateBySKU(c.Request.Context(), middleware.GetUserID(c), c.Param("sku"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) DeleteBySKU(c *gin.Context) {
	if err := h.productService.DeleteBySKU(c.Request.Context(), middleware.GetUserID(c), c.Param("sku")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
