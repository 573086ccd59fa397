package purchaseerrors

import (
	"net/http"

	"github.com/haingladys/JSDC-Accounting/internal/shared/apperror"
)

var (
	ErrPurchaseNotFound = apperror.New(
		apperror.CodeNotFound,
		"purchase not found",
		http.StatusNotFound,
	)
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"purchase category not found",
		http.StatusNotFound,
	)
	ErrCategoryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a category with this name already exists",
		http.StatusConflict,
	)
	ErrCategoryInUse = apperror.New(
		apperror.CodeConflict,
		"category is referenced by purchases and cannot be removed",
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
		"amounts cannot be negative",
		http.StatusBadRequest,
	)
)
