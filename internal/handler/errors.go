package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flicky/swiftora-api/internal/logger"
	"github.com/flicky/swiftora-api/internal/service"
)

var (
	notFoundErrors = []error{
		service.ErrAccountNotFound, service.ErrSupplierNotFound, service.ErrSupermarketNotFound,
		service.ErrTieUpNotFound, service.ErrProductNotFound, service.ErrOrderNotFound,
		service.ErrInventoryNotFound, service.ErrNoOrders, service.ErrNoEligibility,
	}
	conflictErrors = []error{
		service.ErrUserAlreadyExists, service.ErrProfileExists, service.ErrProductExists,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service error onto an HTTP status and the message the
// client sees. Anything unrecognised is a 500 with a generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrTieUpNotAccepted):
		return http.StatusForbidden, err.Error()
	case isAny(err, notFoundErrors):
		return http.StatusNotFound, err.Error()
	case isAny(err, conflictErrors):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromGin(c).Error("request failed", zap.Error(err))
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"message": msg})
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
