package domain_test

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

func TestOrder_NextStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.OrderStatus
		method   domain.DeliveryMethod
		expNext  domain.OrderStatus
		expError error
	}{
		{
			name:    "wallet to logistics",
			status:  domain.OrderStatusPendingWallet,
			method:  domain.DeliveryLocal,
			expNext: domain.OrderStatusPendingLogistics,
		},
		{
			name:    "logistics to pending",
			status:  domain.OrderStatusPendingLogistics,
			method:  domain.DeliveryDomestic,
			expNext: domain.OrderStatusPending,
		},
		{
			name:    "store-pickup skips logistics assignment",
			status:  domain.OrderStatusPendingLogistics,
			method:  domain.DeliveryStorePickup,
			expNext: domain.OrderStatusDelivered,
		},
		{
			name:    "pending to delivered",
			status:  domain.OrderStatusPending,
			method:  domain.DeliveryLocal,
			expNext: domain.OrderStatusDelivered,
		},
		{
			name:     "delivered is terminal",
			status:   domain.OrderStatusDelivered,
			method:   domain.DeliveryLocal,
			expError: domain.ErrOrderDelivered,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			order := domain.Order{Status: test.status, DeliveryMethod: test.method}

			next, err := order.NextStatus()

			assert.Equal(t, test.expError, err)
			assert.Equal(t, test.expNext, next)
		})
	}
}

func TestOrder_CanAdvanceTo(t *testing.T) {
	order := domain.Order{
		Status:         domain.OrderStatusPendingWallet,
		DeliveryMethod: domain.DeliveryLocal,
	}

	assert.True(t, order.CanAdvanceTo(domain.OrderStatusPendingLogistics))
	// Skipping a stage is never legal.
	assert.False(t, order.CanAdvanceTo(domain.OrderStatusPending))
	assert.False(t, order.CanAdvanceTo(domain.OrderStatusDelivered))
	assert.False(t, order.CanAdvanceTo(domain.OrderStatusPendingWallet))
}

func TestOrder_CashOutstanding(t *testing.T) {
	now := time.Now()
	collected := decimal.MustParse("50000")

	order := domain.Order{
		Status:          domain.OrderStatusDelivered,
		PaymentMethod:   domain.PaymentCash,
		AmountCollected: collected,
	}
	assert.True(t, order.CashOutstanding())

	received := order
	received.MoneyReceivedAt = &now
	assert.False(t, received.CashOutstanding())

	settled := order
	settled.AmountCollected = decimal.Zero
	assert.False(t, settled.CashOutstanding())

	transfer := order
	transfer.PaymentMethod = domain.PaymentTransfer
	assert.False(t, transfer.CashOutstanding())

	undelivered := order
	undelivered.Status = domain.OrderStatusPending
	assert.False(t, undelivered.CashOutstanding())
}

func TestPaymentPolicySatisfied(t *testing.T) {
	tests := []struct {
		name   string
		method domain.DeliveryMethod
		status domain.PaymentStatus
		expOK  bool
	}{
		{"store-pickup must be paid", domain.DeliveryStorePickup, domain.PaymentStatusPending, false},
		{"store-pickup paid", domain.DeliveryStorePickup, domain.PaymentStatusPaid, true},
		{"store-pickup credit not enough", domain.DeliveryStorePickup, domain.PaymentStatusCreditApproved, false},
		{"domestic paid", domain.DeliveryDomestic, domain.PaymentStatusPaid, true},
		{"domestic credit approved", domain.DeliveryDomestic, domain.PaymentStatusCreditApproved, true},
		{"international pending", domain.DeliveryInternational, domain.PaymentStatusPending, false},
		{"local delivery with any status", domain.DeliveryLocal, domain.PaymentStatusPending, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expOK, domain.PaymentPolicySatisfied(test.method, test.status))
		})
	}
}

func TestCarrierDirectory(t *testing.T) {
	carriers := domain.CarrierDirectory{
		Local:    []string{"Local-A", "Local-B"},
		National: []string{"National-A"},
	}

	assert.True(t, carriers.Allowed(domain.DeliveryLocal, "Local-A"))
	assert.False(t, carriers.Allowed(domain.DeliveryLocal, "National-A"))
	assert.True(t, carriers.Allowed(domain.DeliveryDomestic, "National-A"))
	assert.True(t, carriers.Allowed(domain.DeliveryInternational, "National-A"))
	assert.False(t, carriers.Allowed(domain.DeliveryStorePickup, "Local-A"))
	assert.Nil(t, carriers.For(domain.DeliveryStorePickup))
}
