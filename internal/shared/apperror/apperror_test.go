package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dayflow/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrForbidden)
		assert.Equal(t, http.StatusForbidden, httpErr.Status)
		assert.Equal(t, apperror.CodeForbidden, httpErr.Code)
		assert.NotEmpty(t, httpErr.Message)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		base := apperror.New(apperror.CodeInsufficientBalance, "not enough", http.StatusUnprocessableEntity)
		err := fmt.Errorf("approve: %w", base.WithDetails(map[string]int{"available": 2}))
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
		assert.Equal(t, apperror.CodeInsufficientBalance, httpErr.Code)
		assert.Equal(t, map[string]int{"available": 2}, httpErr.Details)
		assert.Nil(t, base.Details)
	})

	t.Run("unknown error is masked", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "Internal server error", httpErr.Message)
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", apperror.ErrNotFound)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
	assert.False(t, apperror.Is(err, apperror.CodeConflict))
	assert.False(t, apperror.Is(errors.New("plain"), apperror.CodeNotFound))
}

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"email"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(sample{Email: "x@y.z"})
	mapped := apperror.MapValidationError(err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "Name is required", appErr.Message)
	assert.Equal(t, map[string]string{"Name": "required"}, appErr.Details)

	err = v.Struct(sample{Name: "a", Email: "nope"})
	mapped = apperror.MapValidationError(err)
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, "Email is invalid", appErr.Message)
	assert.Equal(t, map[string]string{"Email": "must be a valid email"}, appErr.Details)

	mapped = apperror.MapValidationError(errors.New("eof"))
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
