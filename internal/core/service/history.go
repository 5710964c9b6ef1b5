package service

import (
	"time"

	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

// trackedFields is the audit whitelist: only these order fields produce
// history entries when they change. Bookkeeping columns (timestamps,
// receipt back-reference) stay out of the trail.
var trackedFields = []struct {
	name string
	get  func(*domain.Order) string
}{
	{"client_name", func(o *domain.Order) string { return o.ClientName }},
	{"delivery_method", func(o *domain.Order) string { return string(o.DeliveryMethod) }},
	{"payment_method", func(o *domain.Order) string { return string(o.PaymentMethod) }},
	{"total_amount", func(o *domain.Order) string { return o.TotalAmount.String() }},
	{"status", func(o *domain.Order) string { return string(o.Status) }},
	{"payment_status", func(o *domain.Order) string { return string(o.PaymentStatus) }},
	{"weight", func(o *domain.Order) string { return o.Weight }},
	{"recipient", func(o *domain.Order) string { return o.Recipient }},
	{"address", func(o *domain.Order) string { return o.Address }},
	{"phone", func(o *domain.Order) string { return o.Phone }},
	{"payment_proof", func(o *domain.Order) string { return o.PaymentProof }},
	{"delivery_proof", func(o *domain.Order) string { return o.DeliveryProof }},
	{"amount_collected", func(o *domain.Order) string { return o.AmountCollected.String() }},
	{"delivery_date", func(o *domain.Order) string { return formatTime(o.DeliveryDate) }},
	{"delivered_by", func(o *domain.Order) string { return o.DeliveredBy }},
	{"notes", func(o *domain.Order) string { return o.Notes }},
	{"money_received_at", func(o *domain.Order) string { return formatTime(o.MoneyReceivedAt) }},
	{"money_received_by", func(o *domain.Order) string { return o.MoneyReceivedBy }},
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// diffOrders compares two order snapshots field by field and returns one
// history entry per changed tracked field.
func diffOrders(prev, cur *domain.Order, at time.Time, actor string) []domain.HistoryEntry {
	var entries []domain.HistoryEntry
	for _, f := range trackedFields {
		oldVal, newVal := f.get(prev), f.get(cur)
		if oldVal == newVal {
			continue
		}
		entries = append(entries, domain.HistoryEntry{
			OrderID:  cur.ID,
			Field:    f.name,
			OldValue: oldVal,
			NewValue: newVal,
			Date:     at,
			User:     actor,
		})
	}
	return entries
}
