package attendance

type UpsertAttendanceRequest struct {
	EmployeeName string  `json:"employee_name" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Status       string  `json:"status" binding:"required,oneof=present half_day absent"`
	Notes        *string `json:"notes"`
}

type EditAttendanceRequest struct {
	Date   string  `json:"date" binding:"required"`
	Status string  `json:"status" binding:"required,oneof=present half_day absent"`
	Notes  *string `json:"notes"`
}

type ListAttendanceFilterRequest struct {
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	EmployeeName string `form:"employee_name"`
}

type WeeklyOverviewFilterRequest struct {
	// Reference picks the ISO week to report on; defaults to today.
	Reference string `form:"reference"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	PayrollID    *string `json:"payroll_id,omitempty"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	Deleted      bool    `json:"deleted"`
	DeletedAt    *string `json:"deleted_at,omitempty"`
}

type UpsertAttendanceResponse struct {
	AttendanceResponse
	Created bool `json:"created"`
}

type EmployeeWeekRow struct {
	EmployeeName string            `json:"employee_name"`
	Statuses     map[string]string `json:"statuses"`
}

type WeeklyOverviewResponse struct {
	WeekStart    string            `json:"week_start"`
	WeekEnd      string            `json:"week_end"`
	Days         []string          `json:"days"`
	Employees    []EmployeeWeekRow `json:"employees"`
	TodayPresent int               `json:"today_present"`
	TodayHalfDay int               `json:"today_half_day"`
	TodayAbsent  int               `json:"today_absent"`
}

type BulkDeleteResponse struct {
	EmployeeName string `json:"employee_name"`
	Deleted      int    `json:"deleted"`
}
