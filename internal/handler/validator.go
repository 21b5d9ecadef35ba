package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/flicky/swiftora-api/internal/model"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator about decimal fields and the
// marketrole tag. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Lets gte/gt work on prices.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("marketrole", func(fl validator.FieldLevel) bool {
			return model.Role(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
		})
	})
}

// bindJSON decodes and validates the body. On failure it writes a 400 and
// returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	RegisterValidators()
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "fields": fields})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
	return false
}
