package summary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodCustom  = "custom"
)

// AttendanceSummary is a pure cache over the attendance ledger. Rows are
// identified by (employee_name, period_type, start_date, end_date,
// record_state); the composite identity index carries that uniqueness and
// is the ON CONFLICT target of the repository upsert. It is always safe to
// delete every row and rebuild from attendance.
type AttendanceSummary struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID    *uuid.UUID `gorm:"column:payroll_id;type:uuid;index"`
	EmployeeName string     `gorm:"column:employee_name;type:varchar(100);not null;index;uniqueIndex:,composite:identity"`
	PeriodType   string     `gorm:"column:period_type;type:varchar(10);not null;uniqueIndex:,composite:identity"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null;uniqueIndex:,composite:identity"`
	EndDate      time.Time  `gorm:"column:end_date;type:date;not null;uniqueIndex:,composite:identity"`

	TotalDaysInPeriod int `gorm:"column:total_days_in_period;not null"`
	PresentDays       int `gorm:"column:present_days;not null"`
	HalfDays          int `gorm:"column:half_days;not null"`
	AbsentDays        int `gorm:"column:absent_days;not null"`

	// FullDays is kept decimal-exact so repeated recomputation never drifts.
	FullDays decimal.Decimal `gorm:"column:full_days;type:decimal(6,1);not null"`

	CalculatedAt time.Time `gorm:"column:calculated_at;not null"`

	softdelete.IdentityFields

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AttendanceSummary) TableName() string {
	return "attendance_summaries"
}

func ValidPeriodType(v string) bool {
	switch v {
	case PeriodWeekly, PeriodMonthly, PeriodCustom:
		return true
	}
	return false
}
