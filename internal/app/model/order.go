package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PaymentMethod string
type PaymentStatus string
type OrderStatus string
type DeliveryStatus string

const (
	PaymentMethodEasypaisa  PaymentMethod = "easypaisa"
	PaymentMethodMeezanBank PaymentMethod = "meezan-bank"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusVerified PaymentStatus = "verified"

	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	DeliveryStatusNotStarted     DeliveryStatus = "not-started"
	DeliveryStatusInProgress     DeliveryStatus = "in-progress"
	DeliveryStatusOutForDelivery DeliveryStatus = "out-for-delivery"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
)

// AllOrderStatuses lists every order status, used to zero-fill analytics.
var AllOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusProcessing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderItem is a line snapshot taken at purchase time. Prices are never
// re-fetched from the catalog after the order is placed.
type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

// OrderItems stores the item snapshots as a JSON column.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	case nil:
		*items = nil
		return nil
	default:
		return fmt.Errorf("unsupported order items column type %T", value)
	}
}

type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	OrderID           string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_id"` // e.g. BQ-20260118-001
	CustomerName      string         `gorm:"not null" json:"customer_name"`
	Phone             string         `gorm:"not null;index" json:"phone"`
	Whatsapp          string         `gorm:"not null" json:"whatsapp"`
	Email             string         `json:"email,omitempty"`
	Address           string         `gorm:"type:text;not null" json:"address"`
	City              string         `gorm:"not null" json:"city"`
	Country           string         `gorm:"default:'Pakistan'" json:"country"`
	Notes             string         `gorm:"type:text" json:"notes,omitempty"`
	Items             OrderItems     `gorm:"type:jsonb;not null" json:"items"`
	TotalAmount       float64        `gorm:"not null" json:"total_amount"`
	PaymentMethod     PaymentMethod  `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus     PaymentStatus  `gorm:"type:varchar(20);default:'pending';index" json:"payment_status"`
	OrderStatus       OrderStatus    `gorm:"type:varchar(20);default:'received';index" json:"order_status"`
	DeliveryStatus    DeliveryStatus `gorm:"type:varchar(20);default:'not-started'" json:"delivery_status"`
	EstimatedDelivery string         `json:"estimated_delivery,omitempty"`
	TrackingNotes     string         `gorm:"type:text" json:"tracking_notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
