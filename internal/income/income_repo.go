package income

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyTotals aggregates one month of income by settlement status.
type MonthlyTotals struct {
	Total    decimal.Decimal
	Received decimal.Decimal
	Pending  decimal.Decimal
}

//go:generate mockgen -source=income_repo.go -destination=mock/income_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, in *Income) error
	Update(ctx context.Context, in *Income) error
	FindByID(ctx context.Context, id string) (*Income, error)
	FindByMonth(ctx context.Context, month, year int) ([]Income, error)
	MonthlyTotals(ctx context.Context, month, year int) (MonthlyTotals, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, in *Income) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *repository) Update(ctx context.Context, in *Income) error {
	return r.db.WithContext(ctx).Save(in).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Income, error) {
	var in Income
	err := r.db.WithContext(ctx).First(&in, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *repository) FindByMonth(ctx context.Context, month, year int) ([]Income, error) {
	var rows []Income
	err := r.db.WithContext(ctx).
		Where("EXTRACT(MONTH FROM date) = ? AND EXTRACT(YEAR FROM date) = ?", month, year).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) MonthlyTotals(ctx context.Context, month, year int) (MonthlyTotals, error) {
	var t MonthlyTotals
	err := r.db.WithContext(ctx).
		Raw(`SELECT
			COALESCE(SUM(amount), 0) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS received,
			COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS pending
		FROM incomes
		WHERE EXTRACT(MONTH FROM date) = ? AND EXTRACT(YEAR FROM date) = ?`,
			StatusReceived, StatusPending, month, year,
		).
		Scan(&t).Error
	return t, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Income{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
