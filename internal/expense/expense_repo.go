package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	// Category filters exact matches; the special value "!Salary" excludes
	// payroll-generated salary rows instead.
	Category    string
	ShowDeleted bool
}

type Totals struct {
	Total  decimal.Decimal
	Salary decimal.Decimal
	Other  decimal.Decimal
}

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Expense) error
	Update(ctx context.Context, e *Expense) error
	FindAnyByID(ctx context.Context, id string) (*Expense, error)
	FindFiltered(ctx context.Context, f Filter) ([]Expense, error)
	FindDeleted(ctx context.Context) ([]Expense, error)
	ActiveTotals(ctx context.Context, f Filter) (Totals, error)
	FindActiveByPayroll(ctx context.Context, payrollID uuid.UUID) ([]Expense, error)
	// DeleteByPayroll hard-deletes every row referencing the payroll,
	// whatever its record state. Payroll-generated rows are replaced
	// wholesale, never edited in place.
	DeleteByPayroll(ctx context.Context, payrollID uuid.UUID) error
	PayrollIsActive(ctx context.Context, payrollID uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindAnyByID(ctx context.Context, id string) (*Expense, error) {
	var e Expense
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindFiltered(ctx context.Context, f Filter) ([]Expense, error) {
	var rows []Expense
	err := r.applyFilter(r.db.WithContext(ctx), f).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindDeleted(ctx context.Context) ([]Expense, error) {
	var rows []Expense
	err := r.db.WithContext(ctx).
		Where("record_state = ?", softdelete.StateDeleted).
		Order("deleted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ActiveTotals(ctx context.Context, f Filter) (Totals, error) {
	f.ShowDeleted = false

	var t Totals
	row := struct {
		Total  decimal.Decimal
		Salary decimal.Decimal
	}{}
	err := r.applyFilter(r.db.WithContext(ctx).Model(&Expense{}), f).
		Select(
			"COALESCE(SUM(total_amount), 0) AS total, "+
				"COALESCE(SUM(CASE WHEN category = ? THEN total_amount ELSE 0 END), 0) AS salary",
			CategorySalary,
		).
		Scan(&row).Error
	if err != nil {
		return t, err
	}

	t.Total = row.Total
	t.Salary = row.Salary
	t.Other = row.Total.Sub(row.Salary)
	return t, nil
}

func (r *repository) FindActiveByPayroll(ctx context.Context, payrollID uuid.UUID) ([]Expense, error) {
	var rows []Expense
	err := r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Where("record_state = ?", softdelete.StateActive).
		Order("payment_method ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByPayroll(ctx context.Context, payrollID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Delete(&Expense{}).Error
}

func (r *repository) PayrollIsActive(ctx context.Context, payrollID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(1) FROM payrolls WHERE id = ? AND record_state = ?",
			payrollID, softdelete.StateActive).
		Scan(&count).Error
	return count > 0, err
}

func (r *repository) applyFilter(db *gorm.DB, f Filter) *gorm.DB {
	if !f.ShowDeleted {
		db = db.Where("record_state = ?", softdelete.StateActive)
	}
	if f.StartDate != nil && f.EndDate != nil {
		db = db.Where("date BETWEEN ? AND ?",
			f.StartDate.Format("2006-01-02"), f.EndDate.Format("2006-01-02"))
	}
	switch f.Category {
	case "":
	case "!" + CategorySalary:
		db = db.Where("category <> ?", CategorySalary)
	default:
		db = db.Where("category = ?", f.Category)
	}
	return db
}
