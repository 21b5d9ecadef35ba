package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/middleware"
	"github.com/flicky/swiftora-api/internal/model"
)

type TieUpHandler struct {
	tieUps TieUpService
	ids    CallerResolver
}

func NewTieUpHandler(tieUps TieUpService, ids CallerResolver) *TieUpHandler {
	return &TieUpHandler{tieUps: tieUps, ids: ids}
}

// Request answers 201 for a new tie-up and 200 when the pair already had one.
func (h *TieUpHandler) Request(c *gin.Context) {
	var req dto.TieUpRequest
	if !bindJSON(c, &req) {
		return
	}

	tieUp, created, err := h.tieUps.Request(c.Request.Context(), middleware.GetUserID(c), req.SupplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, toTieUpResponse(tieUp))
}

func (h *TieUpHandler) Accept(c *gin.Context) {
	supermarketID, ok := uuidParam(c, "supermarketId")
	if !ok {
		return
	}
	supplierID, ok := uuidParam(c, "supplierId")
	if !ok {
		return
	}

	tieUp, err := h.tieUps.Accept(c.Request.Context(), middleware.GetUserID(c), supermarketID, supplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTieUpResponse(tieUp))
}

func (h *TieUpHandler) Status(c *gin.Context) {
	raw := c.Query("supplierId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "supplierId is required"})
		return
	}
	supplierID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid supplierId"})
		return
	}

	status, err := h.tieUps.Status(c.Request.Context(), middleware.GetUserID(c), supplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TieUpStatusResponse{Status: status})
}

// Accepted lists the caller's accepted tie-ups. The path id may be either
// of the caller's ids; any other id is refused.
func (h *TieUpHandler) Accepted(c *gin.Context) {
	pathID, ok := uuidParam(c, "supermarketId")
	if !ok {
		return
	}
	caller, ok := resolveOwner(c, h.ids, pathID)
	if !ok {
		return
	}

	list, err := h.tieUps.ListAccepted(c.Request.Context(), caller.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.AcceptedTieUpResponse, 0, len(list))
	for i := range list {
		t := &list[i].TieUp
		out = append(out, dto.AcceptedTieUpResponse{
			SupplierResponse:     toSupplierResponse(&list[i].Supplier),
			TieUpID:              t.ID,
			SupermarketID:        t.SupermarketID,
			SupermarketAccountID: t.SupermarketAccountID,
			Status:               t.Status,
			RequestedAt:          t.RequestedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *TieUpHandler) ForSupplier(c *gin.Context) {
	list, err := h.tieUps.ListForSupplier(c.Request.Context(), middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.SupplierTieUpResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.SupplierTieUpResponse{
			TieUpResponse: toTieUpResponse(&list[i].TieUp),
			Supermarket:   toSupermarketResponse(&list[i].Supermarket),
		})
	}
	c.JSON(http.StatusOK, out)
}

// resolveOwner resolves the caller and checks that pathID names the caller
// by account or profile id. It writes the error response itself.
func resolveOwner(c *gin.Context, ids CallerResolver, pathID uuid.UUID) (*model.Party, bool) {
	caller, err := ids.Caller(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if pathID != caller.AccountID && pathID != caller.ProfileID {
		c.JSON(http.StatusForbidden, gin.H{"message": "path id does not belong to the caller"})
		return nil, false
	}
	return caller, true
}
