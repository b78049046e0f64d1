// internal/models/order.go
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

type Order struct {
	BaseModel
	Moment   time.Time   `json:"moment" gorm:"not null;index"`
	Status   OrderStatus `json:"status" gorm:"type:varchar(20);not null"`
	ClientID uuid.UUID   `json:"clientId" gorm:"type:uuid;not null;index"`

	// Relationships
	Client User        `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Items  []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is keyed by (order, product); a product appears at most once per
// order. Price is the product price captured when the order was placed and
// Position keeps the sequence in which items were requested.
type OrderItem struct {
	OrderID   uuid.UUID       `json:"orderId" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `json:"productId" gorm:"type:uuid;primaryKey;index"`
	Position  int             `json:"-" gorm:"not null;default:0"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeSave keeps unknown states out of the status column.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, o.Status)
	}
	return nil
}

func (i OrderItem) SubTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.SubTotal())
	}
	return total
}
