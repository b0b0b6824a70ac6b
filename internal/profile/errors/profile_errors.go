package profileerrors

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
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"A user with this email already exists",
		http.StatusConflict,
	)
	ErrLeaveBalanceOutOfRange = apperror.New(
		apperror.CodeValidation,
		"Leave balance must be between 0 and the policy cap",
		http.StatusBadRequest,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeValidation,
		"Salary must be a non-negative amount with at most 2 decimal places",
		http.StatusBadRequest,
	)
	ErrInvalidJoinDate = apperror.New(
		apperror.CodeValidation,
		"Invalid join_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNothingToUpdate = apperror.New(
		apperror.CodeValidation,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeForbidden,
		"You cannot delete your own account",
		http.StatusForbidden,
	)
	ErrProvisioningUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"User provisioning is not available",
		http.StatusServiceUnavailable,
	)
)
