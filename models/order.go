package models

import "time"

// OrderStatus represents all possible states of a customer order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderDispatched OrderStatus = "dispatched"
	OrderDelivered  OrderStatus = "delivered"
	OrderCanceled   OrderStatus = "canceled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderDispatched, OrderDelivered, OrderCanceled:
		return true
	}
	return false
}

type Order struct {
	OrderID         string      `json:"orderId" gorm:"primaryKey" bson:"orderId"`
	CustomerName    string      `json:"customerName" gorm:"not null" bson:"customerName"`
	DeliveryAddress string      `json:"deliveryAddress" gorm:"not null" bson:"deliveryAddress"`
	OrderStatus     OrderStatus `json:"orderStatus" gorm:"not null;default:'pending'" bson:"orderStatus"`
	TotalAmount     float64     `json:"totalAmount" gorm:"not null" bson:"totalAmount"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OrderChanges holds the fields of a partial order update; nil means untouched
type OrderChanges struct {
	CustomerName    *string
	DeliveryAddress *string
	OrderStatus     *OrderStatus
	TotalAmount     *float64
}
