package orders

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusBooked     OrderStatus = "booked"
	StatusDispatched OrderStatus = "dispatched"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusReturned   OrderStatus = "returned"
)

// VerificationStatus represents the address verification state of an order
type VerificationStatus string

const (
	VerificationPending     VerificationStatus = "pending"
	VerificationApproved    VerificationStatus = "approved"
	VerificationDisapproved VerificationStatus = "disapproved"
)

// Order represents a customer order
type Order struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	OrderNumber        string             `json:"order_number" db:"order_number"`
	CustomerName       string             `json:"customer_name" db:"customer_name"`
	Phone              string             `json:"phone" db:"phone"`
	Email              string             `json:"email" db:"email"`
	Address            string             `json:"address" db:"address"`
	City               string             `json:"city" db:"city"`
	TotalAmount        float64            `json:"total_amount" db:"total_amount"`
	Status             OrderStatus        `json:"status" db:"status"`
	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	Notes              string             `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// ValidStatuses lists every allowed order status
var ValidStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusBooked, StatusDispatched,
	StatusDelivered, StatusCancelled, StatusReturned,
}

// IsValidStatus reports whether s is an allowed order status
func IsValidStatus(s OrderStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CreateOrderRequest is the API request for creating an order
type CreateOrderRequest struct {
	OrderNumber  string  `json:"order_number" binding:"required"`
	CustomerName string  `json:"customer_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required,min=7,max=20"`
	Email        string  `json:"email" binding:"omitempty,email"`
	Address      string  `json:"address" binding:"required"`
	City         string  `json:"city" binding:"required"`
	TotalAmount  float64 `json:"total_amount" binding:"required,gt=0"`
	Notes        string  `json:"notes"`
}

// UpdateStatusRequest is the API request for updating an order's status
type UpdateStatusRequest struct {
	Status             OrderStatus        `json:"status" binding:"required,order_status"`
	VerificationStatus VerificationStatus `json:"verification_status" binding:"omitempty,oneof=pending approved disapproved"`
	Notes              string             `json:"notes"`
}
