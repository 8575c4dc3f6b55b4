package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of order states. Transitions are
// unrestricted: any valid status may replace any other.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusProcessed OrderStatus = "Processed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessed, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is one checked-out cart line. Sibling rows from the same checkout
// share a BatchID and the shipping/contact fields.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BatchID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"batch_id"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	BookID          uuid.UUID   `gorm:"type:uuid;not null" json:"book_id"`
	BookTitle       string      `gorm:"not null" json:"book_title"`
	BookPrice       float64     `gorm:"not null" json:"book_price"`
	Quantity        int         `gorm:"not null" json:"quantity"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	FullName        string      `gorm:"not null" json:"full_name"`
	Email           string      `gorm:"not null" json:"email"`
	PhoneNumber     string      `json:"phone_number"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	City            string      `json:"city"`
	PostalCode      string      `json:"postal_code"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	OrderDate       time.Time   `gorm:"autoCreateTime" json:"order_date"`
}

type CheckoutRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phoneNumber"`
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	City            string `json:"city"`
	PostalCode      string `json:"postalCode"`
}

type CheckoutResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	BatchID    uuid.UUID `json:"batchId"`
	TotalPrice float64   `json:"totalPrice"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
