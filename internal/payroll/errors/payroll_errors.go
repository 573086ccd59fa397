package payrollerrors

import (
	"net/http"

	"github.com/haingladys/JSDC-Accounting/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrPayrollAlreadyDeleted = apperror.New(
		apperror.CodeConflict,
		"payroll is already deleted",
		http.StatusConflict,
	)
	ErrPayrollNotDeleted = apperror.New(
		apperror.CodeConflict,
		"payroll is not deleted",
		http.StatusConflict,
	)
	ErrPayrollDeleted = apperror.New(
		apperror.CodeBlocked,
		"payroll is deleted, restore it first",
		http.StatusConflict,
	)
	ErrDuplicatePayroll = apperror.New(
		apperror.CodeConflict,
		"an active payroll already exists for this employee and period",
		http.StatusConflict,
	)
	// Incentives require full-or-near-full attendance in the period.
	ErrIncentiveRequiresAttendance = apperror.New(
		apperror.CodeInvalidInput,
		"incentive requires more than 28 worked days in the period",
		http.StatusBadRequest,
	)
	ErrZeroSplitPercentages = apperror.New(
		apperror.CodeInvalidInput,
		"cash and bank percentages cannot both be zero for a split payment",
		http.StatusBadRequest,
	)
	ErrNegativeSplitPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"split percentages cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidSplitType = apperror.New(
		apperror.CodeInvalidInput,
		"payment_split_type must be one of full_cash, full_bank, split",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be positive",
		http.StatusBadRequest,
	)
	ErrNegativePay = apperror.New(
		apperror.CodeInvalidInput,
		"basic_pay and incentive_amount cannot be negative",
		http.StatusBadRequest,
	)
)
