package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
)

const (
	CategorySalary = "Salary"

	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodUPI          = "UPI"
	PaymentMethodCredit       = "Credit"
)

type Expense struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time `gorm:"column:date;type:date;not null;index"`
	VoucherNo   *string   `gorm:"column:voucher_no;type:varchar(50)"`
	Category    string    `gorm:"column:category;type:varchar(100);not null;index"`
	Description *string   `gorm:"column:description;type:text"`

	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(50);not null"`

	// Payroll-generated salary rows carry a back-reference; user-entered rows
	// may carry one too. The reference is cleared, not the row removed, when
	// a payroll link is dropped.
	PayrollID    *uuid.UUID `gorm:"column:payroll_id;type:uuid;index"`
	EmployeeName *string    `gorm:"column:employee_name;type:varchar(100)"`

	// CascadePayrollID is stamped when a payroll soft-delete cascades into
	// this row, so a payroll restore reactivates exactly the rows it took
	// down and nothing that was deleted independently.
	CascadePayrollID *uuid.UUID `gorm:"column:cascade_payroll_id;type:uuid"`

	softdelete.Fields

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
