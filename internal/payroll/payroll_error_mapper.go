package payroll

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	payrollerrors "github.com/haingladys/JSDC-Accounting/internal/payroll/errors"
)

// mapWriteError is the race backstop: two concurrent saves for the same
// (employee, month, year) both pass the lookup, one insert loses on the
// active-row unique key and comes back as a conflict.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return payrollerrors.ErrDuplicatePayroll
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return payrollerrors.ErrDuplicatePayroll
	}

	return err
}
