package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

// CascadeCounts reports how many child rows a payroll delete or restore
// touched, split by table.
type CascadeCounts struct {
	Attendance int64
	Expenses   int64
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Payroll) error
	Update(ctx context.Context, p *Payroll) error
	FindAnyByID(ctx context.Context, id string) (*Payroll, error)
	FindActiveByEmployeePeriod(ctx context.Context, employee string, month, year int) (*Payroll, error)
	FindDeletedByEmployeePeriod(ctx context.Context, employee string, month, year int) (*Payroll, error)
	ListActiveByPeriod(ctx context.Context, month, year int) ([]Payroll, error)
	ListDeleted(ctx context.Context) ([]Payroll, error)
	// SumWorkedDays weights the employee's active attendance in the period
	// 1.0 / 0.5 / 0.0 by status.
	SumWorkedDays(ctx context.Context, employee string, month, year int) (decimal.Decimal, error)
	// CascadeSoftDeleteChildren soft-deletes every active attendance and
	// expense row under the payroll, stamping cascade_payroll_id so the
	// matching restore can find exactly these rows again.
	CascadeSoftDeleteChildren(ctx context.Context, payrollID uuid.UUID, deletedAt time.Time) (CascadeCounts, error)
	// CascadeRestoreChildren reactivates only rows whose cascade tag matches
	// this payroll; independently deleted rows stay deleted.
	CascadeRestoreChildren(ctx context.Context, payrollID uuid.UUID) (CascadeCounts, error)
	ListAttendanceDates(ctx context.Context, payrollID uuid.UUID) ([]time.Time, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) FindAnyByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByEmployeePeriod(ctx context.Context, employee string, month, year int) (*Payroll, error) {
	return r.findByEmployeePeriodState(ctx, employee, month, year, softdelete.StateActive)
}

func (r *repository) FindDeletedByEmployeePeriod(ctx context.Context, employee string, month, year int) (*Payroll, error) {
	return r.findByEmployeePeriodState(ctx, employee, month, year, softdelete.StateDeleted)
}

func (r *repository) findByEmployeePeriodState(
	ctx context.Context,
	employee string,
	month, year int,
	state string,
) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Where("employee_name = ?", employee).
		Where("month = ?", month).
		Where("year = ?", year).
		Where("record_state = ?", state).
		Order("updated_at DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListActiveByPeriod(ctx context.Context, month, year int) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("year = ?", year).
		Where("record_state = ?", softdelete.StateActive).
		Order("employee_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListDeleted(ctx context.Context) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("record_state = ?", softdelete.StateDeleted).
		Order("deleted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SumWorkedDays(ctx context.Context, employee string, month, year int) (decimal.Decimal, error) {
	row := struct {
		Total decimal.Decimal
	}{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(
			CASE status
				WHEN 'present' THEN 1.0
				WHEN 'half_day' THEN 0.5
				ELSE 0.0
			END), 0) AS total
		FROM attendances
		WHERE employee_name = ?
		  AND record_state = ?
		  AND EXTRACT(MONTH FROM date) = ?
		  AND EXTRACT(YEAR FROM date) = ?`,
			employee, softdelete.StateActive, month, year,
		).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *repository) CascadeSoftDeleteChildren(
	ctx context.Context,
	payrollID uuid.UUID,
	deletedAt time.Time,
) (CascadeCounts, error) {
	var counts CascadeCounts

	res := r.db.WithContext(ctx).Exec(`
		UPDATE attendances
		SET record_state = ?, deleted_at = ?, cascade_payroll_id = ?, updated_at = NOW()
		WHERE payroll_id = ? AND record_state = ?`,
		softdelete.StateDeleted, deletedAt, payrollID,
		payrollID, softdelete.StateActive,
	)
	if res.Error != nil {
		return counts, res.Error
	}
	counts.Attendance = res.RowsAffected

	res = r.db.WithContext(ctx).Exec(`
		UPDATE expenses
		SET record_state = ?, deleted_at = ?, cascade_payroll_id = ?, updated_at = NOW()
		WHERE payroll_id = ? AND record_state = ?`,
		softdelete.StateDeleted, deletedAt, payrollID,
		payrollID, softdelete.StateActive,
	)
	if res.Error != nil {
		return counts, res.Error
	}
	counts.Expenses = res.RowsAffected

	return counts, nil
}

func (r *repository) CascadeRestoreChildren(ctx context.Context, payrollID uuid.UUID) (CascadeCounts, error) {
	var counts CascadeCounts

	res := r.db.WithContext(ctx).Exec(`
		UPDATE attendances
		SET record_state = ?, deleted_at = NULL, cascade_payroll_id = NULL, updated_at = NOW()
		WHERE payroll_id = ? AND record_state = ? AND cascade_payroll_id = ?`,
		softdelete.StateActive,
		payrollID, softdelete.StateDeleted, payrollID,
	)
	if res.Error != nil {
		return counts, res.Error
	}
	counts.Attendance = res.RowsAffected

	res = r.db.WithContext(ctx).Exec(`
		UPDATE expenses
		SET record_state = ?, deleted_at = NULL, cascade_payroll_id = NULL, updated_at = NOW()
		WHERE payroll_id = ? AND record_state = ? AND cascade_payroll_id = ?`,
		softdelete.StateActive,
		payrollID, softdelete.StateDeleted, payrollID,
	)
	if res.Error != nil {
		return counts, res.Error
	}
	counts.Expenses = res.RowsAffected

	return counts, nil
}

func (r *repository) ListAttendanceDates(ctx context.Context, payrollID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT date FROM attendances WHERE payroll_id = ? ORDER BY date ASC", payrollID).
		Scan(&dates).Error
	return dates, err
}
