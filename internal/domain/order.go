package domain

import "time"

// OrderStatus is a closed enumeration; transitions are validated by the
// orders package transition table.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps a raw string to a known status value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Order references its buyer and product by id only. Price is the unit price
// snapshot taken at creation and never follows later catalog price changes.
type Order struct {
	ID              int64       `gorm:"primaryKey" json:"id,string" form:"id"`
	UserId          int64       `gorm:"index;not null" json:"user_id,string" form:"user_id"`
	ProductId       int64       `gorm:"index;not null" json:"product_id,string" form:"product_id"`
	Quantity        int         `gorm:"not null" json:"quantity" form:"quantity"`
	Price           float64     `gorm:"not null" json:"price" form:"price"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount" form:"total_amount"`
	Status          OrderStatus `gorm:"size:20;index" json:"status" form:"status"`
	ShippingAddress string      `gorm:"size:255" json:"shipping_address" form:"shipping_address"`
	PaymentMethod   string      `gorm:"size:64" json:"payment_method" form:"payment_method"`
	Notes           string      `gorm:"type:text" json:"notes" form:"notes"`
	OrderDate       time.Time   `gorm:"index" json:"order_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// SetQuantity keeps TotalAmount consistent with quantity * price.
func (o *Order) SetQuantity(qty int) {
	o.Quantity = qty
	o.TotalAmount = float64(o.Quantity) * o.Price
}

// SetPrice keeps TotalAmount consistent with quantity * price.
func (o *Order) SetPrice(price float64) {
	o.Price = price
	o.TotalAmount = float64(o.Quantity) * o.Price
}
