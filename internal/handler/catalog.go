package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
)

// CatalogHandler serves the supermarket's read views over suppliers,
// products and orders.
type CatalogHandler struct {
	catalog CatalogService
	ids     CallerResolver
}

func NewCatalogHandler(catalog CatalogService, ids CallerResolver) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, ids: ids}
}

func (h *CatalogHandler) EligibleProducts(c *gin.Context) {
	pathID, ok := uuidParam(c, "supermarketAccountId")
	if !ok {
		return
	}
	caller, ok := resolveOwner(c, h.ids, pathID)
	if !ok {
		return
	}

	res, err := h.catalog.EligibleProducts(c.Request.Context(), caller.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}

	suppliers := make([]dto.SupplierResponse, 0, len(res.Suppliers))
	for i := range res.Suppliers {
		suppliers = append(suppliers, toSupplierResponse(&res.Suppliers[i]))
	}
	supplierMap := make(map[string]dto.SupplierResponse, len(res.SupplierMap))
	for acct, sp := range res.SupplierMap {
		supplierMap[acct.String()] = toSupplierResponse(&sp)
	}
	c.JSON(http.StatusOK, dto.EligibleProductsResponse{
		Products:    toProductResponses(res.Products),
		Suppliers:   suppliers,
		SupplierMap: supplierMap,
	})
}

func (h *CatalogHandler) OrdersWithDetails(c *gin.Context) {
	pathID, ok := uuidParam(c, "supermarketId")
	if !ok {
		return
	}
	caller, ok := resolveOwner(c, h.ids, pathID)
	if !ok {
		return
	}

	details, err := h.catalog.OrdersWithDetails(c.Request.Context(), caller.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.OrderDetailResponse, 0, len(details))
	for i := range details {
		out = append(out, toOrderDetailResponse(&details[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *CatalogHandler) SupplierDirectory(c *gin.Context) {
	dir, err := h.catalog.SupplierDirectory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.SupplierDirectoryEntry, 0, len(dir))
	for i := range dir {
		out = append(out, dto.SupplierDirectoryEntry{
			SupplierResponse: toSupplierResponse(&dir[i].Supplier),
			Products:         toProductRefs(dir[i].Products),
		})
	}
	c.JSON(http.StatusOK, out)
}

func toProductRefs(refs []model.ProductRef) []dto.ProductRefResponse {
	out := make([]dto.ProductRefResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.ProductRefResponse{ID: r.ID, Name: r.Name})
	}
	return out
}
