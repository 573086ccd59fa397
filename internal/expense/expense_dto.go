package expense

type CreateExpenseRequest struct {
	Date          string  `json:"date" binding:"required"`
	VoucherNo     *string `json:"voucher_no"`
	Category      string  `json:"category" binding:"required"`
	Description   *string `json:"description"`
	TotalAmount   float64 `json:"total_amount" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	PayrollID     *string `json:"payroll_id"`
	EmployeeName  *string `json:"employee_name"`
}

type UpdateExpenseRequest struct {
	Date          string  `json:"date" binding:"required"`
	VoucherNo     *string `json:"voucher_no"`
	Category      string  `json:"category" binding:"required"`
	Description   *string `json:"description"`
	TotalAmount   float64 `json:"total_amount" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	PayrollID     *string `json:"payroll_id"`
	EmployeeName  *string `json:"employee_name"`
}

type GetExpensesFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Category  string `form:"category"`
}

type ExpenseResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	VoucherNo     *string `json:"voucher_no,omitempty"`
	Category      string  `json:"category"`
	Description   *string `json:"description,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	PayrollID     *string `json:"payroll_id,omitempty"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Deleted       bool    `json:"deleted"`
	DeletedAt     *string `json:"deleted_at,omitempty"`
}

type ExpenseListResponse struct {
	Expenses    []ExpenseResponse `json:"expenses"`
	Total       float64           `json:"total"`
	SalaryTotal float64           `json:"salary_total"`
	OtherTotal  float64           `json:"other_total"`
}
