package expenseerrors

import (
	"net/http"

	"github.com/haingladys/JSDC-Accounting/internal/shared/apperror"
)

var (
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"expense not found",
		http.StatusNotFound,
	)
	ErrExpenseAlreadyDeleted = apperror.New(
		apperror.CodeConflict,
		"expense record is already deleted",
		http.StatusConflict,
	)
	ErrExpenseNotDeleted = apperror.New(
		apperror.CodeConflict,
		"expense record is not deleted",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"total_amount cannot be negative",
		http.StatusBadRequest,
	)
)
