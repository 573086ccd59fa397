package events

import "time"

const PayrollLifecycleTopic = "books.payroll.lifecycle.v1"

const (
	PayrollSaved    = "payroll.saved"
	PayrollDeleted  = "payroll.deleted"
	PayrollRestored = "payroll.restored"
)

type PayrollLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	PayrollID    string    `json:"payroll_id"`
	EmployeeName string    `json:"employee_name"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	NetSalary    float64   `json:"net_salary"`
	OccurredAt   time.Time `json:"occurred_at"`
}
