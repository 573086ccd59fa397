package summary

type GenerateSummaryRequest struct {
	EmployeeName string `json:"employee_name" binding:"required"`
	PeriodType   string `json:"period_type" binding:"required,oneof=weekly monthly custom"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
}

type GetSummaryFilterRequest struct {
	EmployeeName string `form:"employee_name"`
	PeriodType   string `form:"period_type"`
	// Reference selects which week or month to report on; defaults to today.
	Reference string `form:"reference"`
}

type TeamSummaryFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type SummaryResponse struct {
	ID                string  `json:"id"`
	EmployeeName      string  `json:"employee_name"`
	PeriodType        string  `json:"period_type"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalDaysInPeriod int     `json:"total_days_in_period"`
	PresentDays       int     `json:"present_days"`
	HalfDays          int     `json:"half_days"`
	AbsentDays        int     `json:"absent_days"`
	FullDays          float64 `json:"full_days"`
	CalculatedAt      string  `json:"calculated_at"`
}

type RegenerateAllResponse struct {
	EmployeesProcessed int `json:"employees_processed"`
	SummariesWritten   int `json:"summaries_written"`
}
