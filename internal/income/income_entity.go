package income

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusReceived = "Received"
	StatusPending  = "Pending"
)

// Income rows are hard-deleted; they do not participate in the soft-delete
// lifecycle.
type Income struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time       `gorm:"column:date;type:date;not null;index"`
	Description string          `gorm:"column:description;type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	PaymentMode string          `gorm:"column:payment_mode;type:varchar(50);not null"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:'Received'"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (Income) TableName() string {
	return "incomes"
}
