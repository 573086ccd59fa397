package summary

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

// StatusCounts holds the active attendance tallies for one window.
type StatusCounts struct {
	Present int
	Half    int
	Absent  int
}

// EmployeeSpan is the min/max attendance date range of one employee,
// used by the full rebuild to walk week and month windows.
type EmployeeSpan struct {
	EmployeeName string
	MinDate      time.Time
	MaxDate      time.Time
}

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, s *AttendanceSummary) error
	FindActiveByIdentity(ctx context.Context, employee, periodType string, start, end time.Time) (*AttendanceSummary, error)
	CountsForWindow(ctx context.Context, employee string, start, end time.Time) (StatusCounts, error)
	// DeleteAll hard-deletes every summary row. Summaries are a cache, so
	// the rebuild path clears everything before walking attendance again.
	DeleteAll(ctx context.Context) error
	EmployeeSpans(ctx context.Context) ([]EmployeeSpan, error)
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

func (r *repository) Upsert(ctx context.Context, s *AttendanceSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_name"},
				{Name: "period_type"},
				{Name: "start_date"},
				{Name: "end_date"},
				{Name: "record_state"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"payroll_id",
				"total_days_in_period",
				"present_days",
				"half_days",
				"absent_days",
				"full_days",
				"calculated_at",
				"updated_at",
			}),
		}).
		Create(s).Error
}

func (r *repository) FindActiveByIdentity(
	ctx context.Context,
	employee, periodType string,
	start, end time.Time,
) (*AttendanceSummary, error) {
	var s AttendanceSummary
	err := r.db.WithContext(ctx).
		Where("employee_name = ?", employee).
		Where("period_type = ?", periodType).
		Where("start_date = ?", start.Format("2006-01-02")).
		Where("end_date = ?", end.Format("2006-01-02")).
		Where("record_state = ?", softdelete.StateActive).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CountsForWindow(
	ctx context.Context,
	employee string,
	start, end time.Time,
) (StatusCounts, error) {
	var c StatusCounts
	err := r.db.WithContext(ctx).
		Raw(`SELECT
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0) AS present,
			COALESCE(SUM(CASE WHEN status = 'half_day' THEN 1 ELSE 0 END), 0) AS half,
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0) AS absent
		FROM attendances
		WHERE employee_name = ?
		  AND date BETWEEN ? AND ?
		  AND record_state = ?`,
			employee,
			start.Format("2006-01-02"), end.Format("2006-01-02"),
			softdelete.StateActive,
		).
		Scan(&c).Error
	return c, err
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&AttendanceSummary{}).Error
}

func (r *repository) EmployeeSpans(ctx context.Context) ([]EmployeeSpan, error) {
	var spans []EmployeeSpan
	err := r.db.WithContext(ctx).
		Raw(`SELECT employee_name, MIN(date) AS min_date, MAX(date) AS max_date
		FROM attendances
		WHERE record_state = ?
		GROUP BY employee_name
		ORDER BY employee_name`,
			softdelete.StateActive,
		).
		Scan(&spans).Error
	return spans, err
}

func (r *repository) ActivePayrollEmployees(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT employee_name FROM payrolls
		WHERE record_state = ? ORDER BY employee_name`,
			softdelete.StateActive,
		).
		Scan(&names).Error
	return names, err
}
