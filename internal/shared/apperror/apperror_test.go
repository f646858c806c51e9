package apperror_test

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"go-tenure/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsAfterWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := apperror.ErrInvalidInput.Wrap(cause)

	assert.ErrorIs(t, wrapped, apperror.ErrInvalidInput)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, apperror.ErrNotFound)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
		assert.Equal(t, "Resource not found", got.Message)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := errors.Join(errors.New("outer"), apperror.RequiredField("Hire Date"))

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, "Hire Date is required", got.Message)
	})

	t.Run("unknown error is opaque", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("dial tcp 10.0.0.1:27017: i/o timeout"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "27017")
	})
}

type payload struct {
	HireDate    string `json:"hireDate" validate:"required"`
	GrossSalary int    `json:"grossSalary" validate:"min=1"`
	SortOrder   string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string { return fld.Tag.Get("json") })
	return v
}

func TestMapValidationError(t *testing.T) {
	v := newValidator()

	t.Run("required", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{GrossSalary: 2}))
		assert.Equal(t, "Hire Date is required", err.Error())
	})

	t.Run("min", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{HireDate: "2024-01-01"}))
		assert.Equal(t, "Gross Salary must be at least 1", err.Error())
	})

	t.Run("oneof", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{HireDate: "2024-01-01", GrossSalary: 2, SortOrder: "up"}))
		assert.Equal(t, "Sort Order must be one of: asc, desc", err.Error())
	})

	t.Run("unknown field", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New(`json: unknown field "anos"`))
		assert.Equal(t, "Unknown field anos", err.Error())
	})

	t.Run("fallback", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("unexpected EOF"))
		assert.ErrorIs(t, err, apperror.New(apperror.CodeInvalidInput, "Invalid input", http.StatusBadRequest))
	})
}
