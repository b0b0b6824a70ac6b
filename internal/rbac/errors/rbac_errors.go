package rbacerrors

import (
	"net/http"

	"dayflow/internal/shared/apperror"
)

var (
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be hr or employee",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrSelfDemotion = apperror.New(
		apperror.CodeConflict,
		"You cannot remove your own HR role",
		http.StatusConflict,
	)
)
