package service

import (
	"context"
	"errors"
	"time"

	"github.com/govalues/decimal"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order, actor string) (*domain.Order, error) {
	if order.InvoiceCode == "" || order.ClientName == "" ||
		!order.DeliveryMethod.Valid() || !order.PaymentMethod.Valid() {
		return nil, domain.ErrBadRequest
	}

	exOrder, err := s.repo.ReadOrderByInvoiceCode(ctx, order.InvoiceCode)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Read order by invoice code", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exOrder != nil {
		return nil, domain.ErrConflictingData
	}

	// Every order enters the workflow at the wallet desk.
	order.Status = domain.OrderStatusPendingWallet
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentStatusPending
	}
	order.AmountCollected = decimal.Zero
	order.BilledBy = actor

	now := time.Now()
	seed := []domain.HistoryEntry{{
		Field:    "status",
		OldValue: "",
		NewValue: string(order.Status),
		Date:     now,
		User:     actor,
	}}

	newOrder, err := s.repo.CreateOrder(ctx, order, seed)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrBadRequest
	}
	list, err := s.repo.ListOrdersByStatus(ctx, status)
	if err != nil {
		s.logger.Error("List orders by status", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id uint64) error {
	return s.repo.DeleteOrder(ctx, id)
}

func (s *Service) OrderStatistics(ctx context.Context) (*domain.OrderStatistics, error) {
	stats, err := s.repo.OrderStatistics(ctx)
	if err != nil {
		s.logger.Error("Order statistics", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// transition runs one read-modify-write round trip: load the order,
// apply mutate, diff against the prior snapshot and persist the update
// together with its history entries.
func (s *Service) transition(ctx context.Context, id uint64,
	actor string, mutate func(*domain.Order) error) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := *order
	if err := mutate(order); err != nil {
		return nil, err
	}

	history := diffOrders(&prev, order, time.Now(), actor)
	if len(history) == 0 {
		return nil, domain.ErrNoUpdatedData
	}

	updated, err := s.repo.UpdateOrder(ctx, order, history)
	if err != nil {
		s.logger.Error("Update order", zap.Error(err),
			zap.String("invoice", order.InvoiceCode))
		return nil, err
	}
	return updated, nil
}

// stepError distinguishes touching a terminal order from skipping a
// stage.
func stepError(o *domain.Order) error {
	if o.Status == domain.OrderStatusDelivered {
		return domain.ErrOrderDelivered
	}
	return domain.ErrStatusSkip
}

func (s *Service) VerifyPayment(ctx context.Context, id uint64,
	input domain.VerifyPaymentInput, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, func(o *domain.Order) error {
		if o.Status != domain.OrderStatusPendingWallet {
			return stepError(o)
		}
		if !input.PaymentStatus.Valid() {
			return domain.ErrBadRequest
		}
		if input.PaymentStatus == domain.PaymentStatusPaid &&
			input.PaymentProof == "" && o.PaymentProof == "" {
			return domain.ErrProofRequired
		}
		if !domain.PaymentPolicySatisfied(o.DeliveryMethod, input.PaymentStatus) {
			return domain.ErrPaymentPolicy
		}

		o.PaymentStatus = input.PaymentStatus
		if input.PaymentProof != "" {
			o.PaymentProof = input.PaymentProof
		}
		if input.Notes != "" {
			o.Notes = input.Notes
		}
		o.Status = domain.OrderStatusPendingLogistics
		return nil
	})
}

func (s *Service) AssignLogistics(ctx context.Context, id uint64,
	input domain.AssignmentInput, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, func(o *domain.Order) error {
		if o.Status != domain.OrderStatusPendingLogistics {
			return stepError(o)
		}
		if o.DeliveryMethod == domain.DeliveryStorePickup {
			return domain.ErrStorePickupAssign
		}
		if input.Weight == "" && !input.NoWeight {
			return domain.ErrWeightRequired
		}
		if !s.carriers.Allowed(o.DeliveryMethod, input.Carrier) {
			return domain.ErrCarrierNotAllowed
		}

		if input.NoWeight {
			o.Weight = domain.NoWeightMark
		} else {
			o.Weight = input.Weight
		}
		o.Recipient = input.Carrier
		if input.Address != "" {
			o.Address = input.Address
		}
		if input.Phone != "" {
			o.Phone = input.Phone
		}
		if input.Notes != "" {
			o.Notes = input.Notes
		}
		o.Status = domain.OrderStatusPending
		return nil
	})
}

func (s *Service) Deliver(ctx context.Context, id uint64,
	input domain.DeliveryInput, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, func(o *domain.Order) error {
		if !o.CanAdvanceTo(domain.OrderStatusDelivered) {
			return stepError(o)
		}
		if input.DeliveryProof == "" {
			return domain.ErrProofRequired
		}
		if o.PaymentMethod == domain.PaymentCash &&
			input.AmountCollected.Cmp(decimal.Zero) <= 0 {
			return domain.ErrCollectedAmount
		}

		o.DeliveryProof = input.DeliveryProof
		if o.PaymentMethod == domain.PaymentCash {
			o.AmountCollected = input.AmountCollected
		}
		if input.Notes != "" {
			o.Notes = input.Notes
		}
		now := time.Now()
		o.DeliveryDate = &now
		o.DeliveredBy = actor
		o.Status = domain.OrderStatusDelivered
		return nil
	})
}

// UpdateOrder is the generic partial update. The status invariant is
// enforced here as well, so a direct PUT cannot skip a stage or reopen
// a delivered order.
func (s *Service) UpdateOrder(ctx context.Context, id uint64,
	patch domain.OrderPatch, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, func(o *domain.Order) error {
		if patch.Status != nil && *patch.Status != o.Status {
			if !patch.Status.Valid() {
				return domain.ErrBadRequest
			}
			if !o.CanAdvanceTo(*patch.Status) {
				return stepError(o)
			}
			o.Status = *patch.Status
		}
		if patch.ClientName != nil {
			o.ClientName = *patch.ClientName
		}
		if patch.DeliveryMethod != nil {
			if !patch.DeliveryMethod.Valid() {
				return domain.ErrBadRequest
			}
			o.DeliveryMethod = *patch.DeliveryMethod
		}
		if patch.PaymentMethod != nil {
			if !patch.PaymentMethod.Valid() {
				return domain.ErrBadRequest
			}
			o.PaymentMethod = *patch.PaymentMethod
		}
		if patch.TotalAmount != nil {
			o.TotalAmount = *patch.TotalAmount
		}
		if patch.PaymentStatus != nil {
			if !patch.PaymentStatus.Valid() {
				return domain.ErrBadRequest
			}
			o.PaymentStatus = *patch.PaymentStatus
		}
		if patch.Weight != nil {
			o.Weight = *patch.Weight
		}
		if patch.Recipient != nil {
			o.Recipient = *patch.Recipient
		}
		if patch.Address != nil {
			o.Address = *patch.Address
		}
		if patch.Phone != nil {
			o.Phone = *patch.Phone
		}
		if patch.PaymentProof != nil {
			o.PaymentProof = *patch.PaymentProof
		}
		if patch.DeliveryProof != nil {
			o.DeliveryProof = *patch.DeliveryProof
		}
		if patch.AmountCollected != nil {
			o.AmountCollected = *patch.AmountCollected
		}
		if patch.DeliveryDate != nil {
			o.DeliveryDate = patch.DeliveryDate
		}
		if patch.DeliveredBy != nil {
			o.DeliveredBy = *patch.DeliveredBy
		}
		if patch.Notes != nil {
			o.Notes = *patch.Notes
		}
		return nil
	})
}
