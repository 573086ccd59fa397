package attendanceerrors

import (
	"net/http"

	"github.com/haingladys/JSDC-Accounting/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"no payroll record exists for this employee",
		http.StatusNotFound,
	)
	// Distinct from not-found so callers can offer a restore path.
	ErrPayrollDeleted = apperror.New(
		apperror.CodeBlocked,
		"payroll for this employee is deleted, restore it first",
		http.StatusConflict,
	)
	ErrAttendanceAlreadyDeleted = apperror.New(
		apperror.CodeConflict,
		"attendance record is already deleted",
		http.StatusConflict,
	)
	ErrAttendanceNotDeleted = apperror.New(
		apperror.CodeConflict,
		"attendance record is not deleted",
		http.StatusConflict,
	)
	ErrDuplicateAttendance = apperror.New(
		apperror.CodeConflict,
		"an active attendance record already exists for this day",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of present, half_day, absent",
		http.StatusBadRequest,
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
)
