package incomeerrors

import (
	"net/http"

	"github.com/haingladys/JSDC-Accounting/internal/shared/apperror"
)

var (
	ErrIncomeNotFound = apperror.New(
		apperror.CodeNotFound,
		"income record not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be positive",
		http.StatusBadRequest,
	)
)
