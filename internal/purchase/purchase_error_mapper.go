package purchase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	purchaseerrors "github.com/haingladys/JSDC-Accounting/internal/purchase/errors"
)

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return purchaseerrors.ErrPurchaseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return purchaseerrors.ErrCategoryAlreadyExists
		case "23503":
			return purchaseerrors.ErrCategoryInUse
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return purchaseerrors.ErrCategoryAlreadyExists
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return purchaseerrors.ErrCategoryInUse
	}

	return err
}
