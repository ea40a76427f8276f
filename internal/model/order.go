package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of a purchase.
// Valid transitions: pending→completed, pending→failed, pending→cancelled.
// Completed is terminal and immutable.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ItemType is the kind of purchasable content an order refers to.
type ItemType string

const (
	ItemTypeTest   ItemType = "test"
	ItemTypeCourse ItemType = "course"
)

// Order records a purchase of a paid test or course. AmountCents is the
// price in the currency's smallest unit (paise for INR), matching what the
// payment gateway is invoiced for.
type Order struct {
	ID                uuid.UUID   `json:"id"`
	StudentID         int         `json:"student_id"`
	ItemType          ItemType    `json:"item_type"`
	ItemID            uuid.UUID   `json:"item_id"`
	AmountCents       int64       `json:"amount_cents"`
	Currency          string      `json:"currency"`
	ProviderOrderID   string      `json:"provider_order_id,omitempty"`
	ProviderPaymentID string      `json:"provider_payment_id,omitempty"`
	Status            OrderStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Enrollment is the access-granting projection of a completed order (or of
// a free-content claim, in which case OrderID is nil).
type Enrollment struct {
	ID        uuid.UUID  `json:"id"`
	StudentID int        `json:"student_id"`
	ItemType  ItemType   `json:"item_type"`
	ItemID    uuid.UUID  `json:"item_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateOrderRequest is the payload for starting a checkout.
type CreateOrderRequest struct {
	ItemType string    `json:"item_type" binding:"required,oneof=test course"`
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
}

// VerifyPaymentRequest carries the tuple the Razorpay checkout widget hands
// to its handler callback. The signature must be re-verified server-side
// before any content is unlocked.
type VerifyPaymentRequest struct {
	OrderID           uuid.UUID `json:"order_id" binding:"required"`
	ProviderOrderID   string    `json:"razorpay_order_id" binding:"required"`
	ProviderPaymentID string    `json:"razorpay_payment_id" binding:"required"`
	Signature         string    `json:"razorpay_signature" binding:"required"`
}

// CancelOrderRequest marks a pending order as abandoned by the student.
type CancelOrderRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}
