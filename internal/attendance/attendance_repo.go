package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

// PayrollRef is the slice of a payroll row the ledger needs to gate writes:
// which payroll owns the employee and whether it is still active.
type PayrollRef struct {
	ID           uuid.UUID
	EmployeeName string
	RecordState  string
}

func (p PayrollRef) IsDeleted() bool {
	return p.RecordState == softdelete.StateDeleted
}

type Filter struct {
	StartDate    time.Time
	EndDate      time.Time
	EmployeeName string
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindAnyByID(ctx context.Context, id string) (*Attendance, error)
	FindActiveByPayrollDate(ctx context.Context, payrollID uuid.UUID, date time.Time) (*Attendance, error)
	FindDeletedByPayrollDate(ctx context.Context, payrollID uuid.UUID, date time.Time) (*Attendance, error)
	FindActiveByEmployeeDate(ctx context.Context, employee string, date time.Time) (*Attendance, error)
	FindActiveByEmployee(ctx context.Context, employee string) ([]Attendance, error)
	FindRange(ctx context.Context, f Filter) ([]Attendance, error)
	FindDeleted(ctx context.Context) ([]Attendance, error)
	FindRangeAllEmployees(ctx context.Context, start, end time.Time) ([]Attendance, error)
	// FindPayrollForEmployee returns the employee's most recent payroll row,
	// preferring an active one over soft-deleted rows, or nil when the
	// employee has no payroll at all.
	FindPayrollForEmployee(ctx context.Context, employee string) (*PayrollRef, error)
	PayrollRefByID(ctx context.Context, payrollID uuid.UUID) (*PayrollRef, error)
	ActivePayrollEmployees(ctx context.Context) ([]string, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindAnyByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindActiveByPayrollDate(ctx context.Context, payrollID uuid.UUID, date time.Time) (*Attendance, error) {
	return r.findByPayrollDateState(ctx, payrollID, date, softdelete.StateActive)
}

func (r *repository) FindDeletedByPayrollDate(ctx context.Context, payrollID uuid.UUID, date time.Time) (*Attendance, error) {
	return r.findByPayrollDateState(ctx, payrollID, date, softdelete.StateDeleted)
}

func (r *repository) findByPayrollDateState(
	ctx context.Context,
	payrollID uuid.UUID,
	date time.Time,
	state string,
) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("record_state = ?", state).
		Order("updated_at DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindActiveByEmployeeDate(ctx context.Context, employee string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_name = ?", employee).
		Where("date = ?", date.Format("2006-01-02")).
		Where("record_state = ?", softdelete.StateActive).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employee string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_name = ?", employee).
		Where("record_state = ?", softdelete.StateActive).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRange(ctx context.Context, f Filter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("record_state = ?", softdelete.StateActive).
		Where("date BETWEEN ? AND ?",
			f.StartDate.Format("2006-01-02"), f.EndDate.Format("2006-01-02"))
	if f.EmployeeName != "" {
		q = q.Where("employee_name = ?", f.EmployeeName)
	}

	var rows []Attendance
	err := q.Order("date ASC, employee_name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindDeleted(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("record_state = ?", softdelete.StateDeleted).
		Order("deleted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRangeAllEmployees(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("record_state = ?", softdelete.StateActive).
		Where("date BETWEEN ? AND ?",
			start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("employee_name ASC, date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPayrollForEmployee(ctx context.Context, employee string) (*PayrollRef, error) {
	var refs []PayrollRef
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, employee_name, record_state FROM payrolls
		WHERE employee_name = ?
		ORDER BY CASE WHEN record_state = ? THEN 0 ELSE 1 END, year DESC, month DESC
		LIMIT 1`,
			employee, softdelete.StateActive,
		).
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return &refs[0], nil
}

func (r *repository) PayrollRefByID(ctx context.Context, payrollID uuid.UUID) (*PayrollRef, error) {
	var refs []PayrollRef
	err := r.db.WithContext(ctx).
		Raw("SELECT id, employee_name, record_state FROM payrolls WHERE id = ?", payrollID).
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return &refs[0], nil
}

func (r *repository) ActivePayrollEmployees(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT employee_name FROM payrolls WHERE record_state = ? ORDER BY employee_name",
			softdelete.StateActive).
		Scan(&names).Error
	return names, err
}
