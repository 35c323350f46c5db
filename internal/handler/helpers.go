package handler

import (
	"net/http"
	"reflect"

	"github.com/Jaysins/inventory-mgt-backend/internal/apierror"
	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// ok writes a success envelope. Every success response goes through here so
// the surface stays uniform: {success, message, data}.
func ok(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, apierror.OK(message, data))
}

// fail maps a service error to its HTTP status. Domain conflicts
// (insufficient stock, capacity, lifecycle state) all surface as 409 with
// the service's caller-safe message; unknown errors become an opaque 500.
func fail(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case apperr.KindInsufficientStock, apperr.KindCapacityExceeded,
		apperr.KindInvalidState, apperr.KindConflict:
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// parseID parses the :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
