package purchase

type CreatePurchaseRequest struct {
	Date        string  `json:"date" binding:"required"`
	Vendor      string  `json:"vendor" binding:"required"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	BillNo      string  `json:"bill_no" binding:"required"`
	TotalAmount float64 `json:"total_amount" binding:"required"`
	GSTAmount   float64 `json:"gst_amount"`
	PaymentMode string  `json:"payment_mode" binding:"required,oneof=Cash UPI Card 'Net Banking'"`
	Status      string  `json:"status" binding:"omitempty,oneof=Paid Pending Due"`
	Description *string `json:"description"`
}

type UpdatePurchaseRequest struct {
	Date        string  `json:"date" binding:"required"`
	Vendor      string  `json:"vendor" binding:"required"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	BillNo      string  `json:"bill_no" binding:"required"`
	TotalAmount float64 `json:"total_amount" binding:"required"`
	GSTAmount   float64 `json:"gst_amount"`
	PaymentMode string  `json:"payment_mode" binding:"required,oneof=Cash UPI Card 'Net Banking'"`
	Status      string  `json:"status" binding:"required,oneof=Paid Pending Due"`
	Description *string `json:"description"`
}

type RangeFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PurchaseResponse struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Vendor       string  `json:"vendor"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	BillNo       string  `json:"bill_no"`
	TotalAmount  float64 `json:"total_amount"`
	GSTAmount    float64 `json:"gst_amount"`
	PaymentMode  string  `json:"payment_mode"`
	Status       string  `json:"status"`
	Description  *string `json:"description,omitempty"`
}

type PurchaseReportResponse struct {
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Purchases []PurchaseResponse `json:"purchases"`
	Total     float64            `json:"total"`
	GSTTotal  float64            `json:"gst_total"`
	Paid      float64            `json:"paid"`
	Due       float64            `json:"due"`
}
