package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// MoneyReceipt records a wallet-department user physically receiving
// cash from a courier for a set of invoices. Immutable once created.
type MoneyReceipt struct {
	ID           uint64
	CourierName  string
	TotalAmount  decimal.Decimal
	InvoiceCodes []string
	ReceiptPhoto string
	ReceivedBy   string
	ReceivedAt   time.Time
	Notes        string
	CreatedAt    time.Time
}

// CourierCash is the on-demand aggregate of cash a courier has
// collected but not yet handed to the wallet department.
type CourierCash struct {
	Courier       string          `json:"courier"`
	DeliveryCount int             `json:"delivery_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

type ReceiptStatistics struct {
	TotalReceipts  int             `json:"total_receipts"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	UniqueCouriers int             `json:"unique_couriers"`
	Date           string          `json:"date"`
}
