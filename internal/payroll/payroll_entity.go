package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

const (
	SplitFullCash = "full_cash"
	SplitFullBank = "full_bank"
	SplitMixed    = "split"
)

// Payroll is one employee's salary record for a month. The composite
// identity index enforces uniqueness over (employee_name, month, year,
// record_state): at most one active row per employee and period, while a
// soft-deleted row with the same key may sit alongside it. Rows are never
// hard-deleted; attendance keeps a protected reference to them.
type Payroll struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(100);not null;index;uniqueIndex:,composite:identity"`

	BasicPay        decimal.Decimal `gorm:"column:basic_pay;type:decimal(12,2);not null"`
	IncentiveAmount decimal.Decimal `gorm:"column:incentive_amount;type:decimal(12,2);not null"`
	NetSalary       decimal.Decimal `gorm:"column:net_salary;type:decimal(12,2);not null"`

	// WorkedDays is derived from the attendance ledger on every save,
	// never user-editable.
	WorkedDays decimal.Decimal `gorm:"column:worked_days;type:decimal(5,1);not null"`

	PaymentSplitType       string          `gorm:"column:payment_split_type;type:varchar(10);not null"`
	CashPercentage         decimal.Decimal `gorm:"column:cash_percentage;type:decimal(5,2);not null"`
	BankTransferPercentage decimal.Decimal `gorm:"column:bank_transfer_percentage;type:decimal(5,2);not null"`
	CashAmount             decimal.Decimal `gorm:"column:cash_amount;type:decimal(12,2);not null"`
	BankTransferAmount     decimal.Decimal `gorm:"column:bank_transfer_amount;type:decimal(12,2);not null"`

	SalaryDate time.Time `gorm:"column:salary_date;type:date;not null"`
	Month      int       `gorm:"column:month;not null;index;uniqueIndex:,composite:identity"`
	Year       int       `gorm:"column:year;not null;index;uniqueIndex:,composite:identity"`

	IsPaid          bool `gorm:"column:is_paid;not null;default:false"`
	ExpensesCreated bool `gorm:"column:expenses_created;not null;default:false"`

	softdelete.IdentityFields

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

func ValidSplitType(v string) bool {
	switch v {
	case SplitFullCash, SplitFullBank, SplitMixed:
		return true
	}
	return false
}
