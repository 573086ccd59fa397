package payroll

type SavePayrollRequest struct {
	EmployeeName           string  `json:"employee_name" binding:"required"`
	BasicPay               float64 `json:"basic_pay" binding:"required"`
	IncentiveAmount        float64 `json:"incentive_amount"`
	SalaryDate             string  `json:"salary_date" binding:"required"`
	Month                  *int    `json:"month"`
	Year                   *int    `json:"year"`
	PaymentSplitType       string  `json:"payment_split_type" binding:"required,oneof=full_cash full_bank split"`
	CashPercentage         float64 `json:"cash_percentage"`
	BankTransferPercentage float64 `json:"bank_transfer_percentage"`
	IsPaid                 bool    `json:"is_paid"`
}

type GetPeriodFilterRequest struct {
	Month int `form:"month"`
	Year  int `form:"year"`
}

type PayrollResponse struct {
	ID                     string  `json:"id"`
	EmployeeName           string  `json:"employee_name"`
	BasicPay               float64 `json:"basic_pay"`
	IncentiveAmount        float64 `json:"incentive_amount"`
	NetSalary              float64 `json:"net_salary"`
	WorkedDays             float64 `json:"worked_days"`
	PaymentSplitType       string  `json:"payment_split_type"`
	CashPercentage         float64 `json:"cash_percentage"`
	BankTransferPercentage float64 `json:"bank_transfer_percentage"`
	CashAmount             float64 `json:"cash_amount"`
	BankTransferAmount     float64 `json:"bank_transfer_amount"`
	SalaryDate             string  `json:"salary_date"`
	Month                  int     `json:"month"`
	Year                   int     `json:"year"`
	IsPaid                 bool    `json:"is_paid"`
	ExpensesCreated        bool    `json:"expenses_created"`
	Deleted                bool    `json:"deleted"`
	DeletedAt              *string `json:"deleted_at,omitempty"`
}

type SavePayrollResponse struct {
	PayrollResponse
	Created bool `json:"created"`
}

type PeriodTotals struct {
	BasicPay           float64 `json:"basic_pay"`
	IncentiveAmount    float64 `json:"incentive_amount"`
	CashAmount         float64 `json:"cash_amount"`
	BankTransferAmount float64 `json:"bank_transfer_amount"`
	NetSalary          float64 `json:"net_salary"`
}

type PeriodResponse struct {
	Month    int               `json:"month"`
	Year     int               `json:"year"`
	Payrolls []PayrollResponse `json:"payrolls"`
	Totals   PeriodTotals      `json:"totals"`
}

type CascadeResponse struct {
	ID                 string `json:"id"`
	AttendanceAffected int64  `json:"attendance_affected"`
	ExpensesAffected   int64  `json:"expenses_affected"`
}
