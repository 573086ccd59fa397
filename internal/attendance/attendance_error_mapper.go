package attendance

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	attendanceerrors "github.com/haingladys/JSDC-Accounting/internal/attendance/errors"
)

// mapWriteError translates storage failures from the upsert race window.
// A lookup-then-create that loses the race surfaces here as a unique
// violation on the active-row key and is reported as a conflict.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrAttendanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrDuplicateAttendance
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return attendanceerrors.ErrDuplicateAttendance
	}

	return err
}
