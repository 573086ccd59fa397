package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
	StatusDue     = "Due"
)

// Category names are unique. The purchase foreign key is PROTECT: a
// category cannot be removed while purchases reference it.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Category) TableName() string {
	return "purchase_categories"
}

// Purchase rows are hard-deleted.
type Purchase struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Date       time.Time `gorm:"column:date;type:date;not null;index"`
	Vendor     string    `gorm:"column:vendor;type:varchar(100);not null"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`
	BillNo     string    `gorm:"column:bill_no;type:varchar(50);not null"`

	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null;default:0"`
	GSTAmount   decimal.Decimal `gorm:"column:gst_amount;type:decimal(10,2);not null;default:0"`

	PaymentMode string  `gorm:"column:payment_mode;type:varchar(50);not null;default:'Cash'"`
	Status      string  `gorm:"column:status;type:varchar(50);not null;default:'Paid'"`
	Description *string `gorm:"column:description;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID;references:ID"`
}

func (Purchase) TableName() string {
	return "purchases"
}
