package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderStatus is the order lifecycle value. There is no enforced transition
// graph; staff may set any valid status at any time.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is a known lifecycle value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a placed order. The orderer is either a registered user or a
// guest identified only by name and email. Orders are never deleted.
type Order struct {
	BaseModel
	OrderNumber     string         `gorm:"uniqueIndex" json:"order_number"`
	Status          OrderStatus    `gorm:"type:text;index" json:"status"`
	PaymentMethod   string         `json:"payment_method"` // Cash|Instapay|Card
	UserID          *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	User            *User          `json:"user,omitempty"`
	GuestName       string         `json:"guest_name"`
	GuestEmail      string         `json:"guest_email"`
	ShippingAddress Address        `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	TotalPrice      float64        `json:"total_price"`
	StockWarnings   pq.StringArray `gorm:"type:text[]" json:"stock_warnings"`
	PlacedAt        time.Time      `json:"placed_at"`
	Items           []OrderItem    `json:"items,omitempty"`
}

// OrdererEmail returns the address order notifications go to.
func (o *Order) OrdererEmail() string {
	if o.User != nil && o.User.Email != "" {
		return o.User.Email
	}
	return o.GuestEmail
}

// OrdererName returns the display name of whoever placed the order.
func (o *Order) OrdererName() string {
	if o.User != nil && o.User.Name != "" {
		return o.User.Name
	}
	return o.GuestName
}

// OrderItem is one ordered line: a product in a chosen color and size.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Size      string     `json:"size"`
	Quantity  int        `json:"quantity"`
	UnitPrice float64    `json:"price"`
}

// OrderCounter is the single mutable row behind sequential order numbers.
type OrderCounter struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
	Seq  int64  `json:"seq"`
}
