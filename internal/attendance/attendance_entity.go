package attendance

import (
	"time"

	"github.com/google/uuid"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

const (
	StatusPresent = "present"
	StatusHalfDay = "half_day"
	StatusAbsent  = "absent"
)

// Attendance is one employee-day status record. The composite identity
// index enforces uniqueness over (payroll_id, date, record_state): at most
// one active row per payroll and day, with at most one soft-deleted row
// parked beside it for resurrection. The payroll foreign key is PROTECT:
// payroll rows are never hard-deleted while attendance references them.
type Attendance struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID    *uuid.UUID `gorm:"column:payroll_id;type:uuid;index;uniqueIndex:,composite:identity"`
	EmployeeName string     `gorm:"column:employee_name;type:varchar(100);not null;index"`
	Date         time.Time  `gorm:"column:date;type:date;not null;index;uniqueIndex:,composite:identity"`
	Status       string     `gorm:"column:status;type:varchar(10);not null"`
	Notes        *string    `gorm:"column:notes;type:text"`

	// CascadePayrollID marks rows taken down by a payroll soft-delete so the
	// matching restore reactivates exactly those and nothing else.
	CascadePayrollID *uuid.UUID `gorm:"column:cascade_payroll_id;type:uuid"`

	softdelete.IdentityFields

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func ValidStatus(v string) bool {
	switch v {
	case StatusPresent, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}
