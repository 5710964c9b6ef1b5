package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// VerifyPaymentInput carries the wallet decision moving an order from
// pending_wallet to pending_logistics.
type VerifyPaymentInput struct {
	PaymentStatus PaymentStatus
	PaymentProof  string
	Notes         string
}

// AssignmentInput carries the logistics decision moving an order from
// pending_logistics to pending.
type AssignmentInput struct {
	Weight   string
	NoWeight bool
	Carrier  string
	Address  string
	Phone    string
	Notes    string
}

// DeliveryInput carries the courier confirmation moving an order to
// delivered.
type DeliveryInput struct {
	DeliveryProof   string
	AmountCollected decimal.Decimal
	Notes           string
}

// ReceiptInput describes a cash handoff a wallet user confirms.
type ReceiptInput struct {
	CourierName  string
	InvoiceCodes []string
	ReceiptPhoto string
	Notes        string
}

// OrderPatch is a partial update to an order. Nil fields are left
// untouched. Status changes still go through the forward-only
// transition check.
type OrderPatch struct {
	ClientName      *string
	DeliveryMethod  *DeliveryMethod
	PaymentMethod   *PaymentMethod
	TotalAmount     *decimal.Decimal
	Status          *OrderStatus
	PaymentStatus   *PaymentStatus
	Weight          *string
	Recipient       *string
	Address         *string
	Phone           *string
	PaymentProof    *string
	DeliveryProof   *string
	AmountCollected *decimal.Decimal
	DeliveryDate    *time.Time
	DeliveredBy     *string
	Notes           *string
}
