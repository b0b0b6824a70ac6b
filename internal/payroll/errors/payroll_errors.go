package payrollerrors

import (
	"net/http"

	"dayflow/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)
	ErrInvalidExportFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid export format, expected xlsx or csv",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to build payroll export",
		http.StatusInternalServerError,
	)
)
