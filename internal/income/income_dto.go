package income

type CreateIncomeRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	PaymentMode string  `json:"payment_mode" binding:"required,oneof=Cash UPI 'Credit Card' 'Bank Transfer' Swiggy Zomato"`
	Status      string  `json:"status" binding:"omitempty,oneof=Received Pending"`
}

type UpdateIncomeRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	PaymentMode string  `json:"payment_mode" binding:"required,oneof=Cash UPI 'Credit Card' 'Bank Transfer' Swiggy Zomato"`
	Status      string  `json:"status" binding:"required,oneof=Received Pending"`
}

type MonthFilterRequest struct {
	Month int `form:"month"`
	Year  int `form:"year"`
}

type IncomeResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"payment_mode"`
	Status      string  `json:"status"`
}

type IncomeReportResponse struct {
	Month    int              `json:"month"`
	Year     int              `json:"year"`
	Incomes  []IncomeResponse `json:"incomes"`
	Total    float64          `json:"total"`
	Received float64          `json:"received"`
	Pending  float64          `json:"pending"`
}
