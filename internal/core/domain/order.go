package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPendingWallet    OrderStatus = "pending_wallet"
	OrderStatusPendingLogistics OrderStatus = "pending_logistics"
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusDelivered        OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingWallet, OrderStatusPendingLogistics,
		OrderStatusPending, OrderStatusDelivered:
		return true
	}
	return false
}

type DeliveryMethod string

const (
	DeliveryLocal         DeliveryMethod = "local-delivery"
	DeliveryStorePickup   DeliveryMethod = "store-pickup"
	DeliveryDomestic      DeliveryMethod = "domestic-shipment"
	DeliveryInternational DeliveryMethod = "international-shipment"
)

func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryLocal, DeliveryStorePickup, DeliveryDomestic, DeliveryInternational:
		return true
	}
	return false
}

// IsShipment reports whether the order leaves with a national carrier.
func (m DeliveryMethod) IsShipment() bool {
	return m == DeliveryDomestic || m == DeliveryInternational
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentTransfer   PaymentMethod = "bank-transfer"
	PaymentCreditCard PaymentMethod = "credit-card"
	PaymentElectronic PaymentMethod = "electronic-payment"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCreditCard, PaymentElectronic:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "pending"
	PaymentStatusPaid           PaymentStatus = "paid"
	PaymentStatusCreditApproved PaymentStatus = "credit-approved"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCreditApproved:
		return true
	}
	return false
}

type Order struct {
	ID              uint64
	InvoiceCode     string
	ClientName      string
	DeliveryMethod  DeliveryMethod
	PaymentMethod   PaymentMethod
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	BilledBy        string
	Weight          string
	Recipient       string
	Address         string
	Phone           string
	PaymentProof    string
	DeliveryProof   string
	AmountCollected decimal.Decimal
	DeliveryDate    *time.Time
	DeliveredBy     string
	Notes           string
	MoneyReceivedAt *time.Time
	MoneyReceivedBy string
	ReceiptID       *uint64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	History         []HistoryEntry
}

// NextStatus returns the only status the order may advance to.
// Store-pickup orders skip logistics assignment and go straight
// from pending_logistics to delivered.
func (o *Order) NextStatus() (OrderStatus, error) {
	switch o.Status {
	case OrderStatusPendingWallet:
		return OrderStatusPendingLogistics, nil
	case OrderStatusPendingLogistics:
		if o.DeliveryMethod == DeliveryStorePickup {
			return OrderStatusDelivered, nil
		}
		return OrderStatusPending, nil
	case OrderStatusPending:
		return OrderStatusDelivered, nil
	}
	return "", ErrOrderDelivered
}

// CanAdvanceTo reports whether a single forward step leads to target.
func (o *Order) CanAdvanceTo(target OrderStatus) bool {
	next, err := o.NextStatus()
	return err == nil && next == target
}

// CashOutstanding reports whether the order still holds cash a courier
// owes the wallet department.
func (o *Order) CashOutstanding() bool {
	return o.Status == OrderStatusDelivered &&
		o.PaymentMethod == PaymentCash &&
		o.AmountCollected.Cmp(decimal.Zero) > 0 &&
		o.MoneyReceivedAt == nil
}

type OrderStatistics struct {
	Total            int `json:"total"`
	PendingWallet    int `json:"pending_wallet"`
	PendingLogistics int `json:"pending_logistics"`
	Pending          int `json:"pending"`
	Delivered        int `json:"delivered"`
}
