package service

import (
	"context"
	"time"

	"github.com/govalues/decimal"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) CourierCashSummary(ctx context.Context) ([]*domain.CourierCash, error) {
	summary, err := s.repo.OutstandingCashByCourier(ctx)
	if err != nil {
		s.logger.Error("Courier cash summary", zap.Error(err))
		return nil, err
	}
	return summary, nil
}

func (s *Service) OutstandingOrders(ctx context.Context, courier string) ([]*domain.Order, error) {
	if courier == "" {
		return nil, domain.ErrBadRequest
	}
	return s.repo.ListOutstandingOrders(ctx, courier)
}

// ConfirmReceipt records a physical cash handoff. One MoneyReceipt is
// created for exactly the selected invoices; each covered order has its
// collected amount zeroed and is stamped with the receiving user and
// timestamp, removing it from future summaries. Unselected invoices of
// the same courier stay outstanding.
func (s *Service) ConfirmReceipt(ctx context.Context,
	input domain.ReceiptInput, actor string) (*domain.MoneyReceipt, error) {
	if input.CourierName == "" {
		return nil, domain.ErrBadRequest
	}
	if len(input.InvoiceCodes) == 0 {
		return nil, domain.ErrEmptyReceipt
	}

	// The covered invoices form a set; a repeated code would settle the
	// same order twice and double-count the total.
	seen := make(map[string]struct{}, len(input.InvoiceCodes))
	for _, code := range input.InvoiceCodes {
		if _, ok := seen[code]; ok {
			return nil, domain.ErrBadRequest
		}
		seen[code] = struct{}{}
	}

	now := time.Now()
	total := decimal.Zero
	settled := make([]*domain.Order, 0, len(input.InvoiceCodes))
	var history []domain.HistoryEntry

	for _, code := range input.InvoiceCodes {
		order, err := s.repo.ReadOrderByInvoiceCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !order.CashOutstanding() || order.DeliveredBy != input.CourierName {
			return nil, domain.ErrInvoiceNotOutstanding
		}

		total, err = total.Add(order.AmountCollected)
		if err != nil {
			s.logger.Error("Receipt total overflow", zap.Error(err))
			return nil, domain.ErrInternal
		}

		prev := *order
		order.AmountCollected = decimal.Zero
		order.MoneyReceivedAt = &now
		order.MoneyReceivedBy = actor
		history = append(history, diffOrders(&prev, order, now, actor)...)
		settled = append(settled, order)
	}

	receipt := &domain.MoneyReceipt{
		CourierName:  input.CourierName,
		TotalAmount:  total,
		InvoiceCodes: input.InvoiceCodes,
		ReceiptPhoto: input.ReceiptPhoto,
		ReceivedBy:   actor,
		ReceivedAt:   now,
		Notes:        input.Notes,
	}

	created, err := s.repo.CreateReceipt(ctx, receipt, settled, history)
	if err != nil {
		s.logger.Error("Create receipt", zap.Error(err),
			zap.String("courier", input.CourierName))
		return nil, err
	}
	return created, nil
}

func (s *Service) GetReceipt(ctx context.Context, id uint64) (*domain.MoneyReceipt, error) {
	return s.repo.ReadReceipt(ctx, id)
}

func (s *Service) ListReceipts(ctx context.Context) ([]*domain.MoneyReceipt, error) {
	return s.repo.ListReceipts(ctx)
}

func (s *Service) ListReceiptsToday(ctx context.Context) ([]*domain.MoneyReceipt, error) {
	y, m, d := time.Now().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return s.repo.ListReceiptsByDateRange(ctx, from, from.AddDate(0, 0, 1))
}

func (s *Service) ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]*domain.MoneyReceipt, error) {
	if to.Before(from) {
		return nil, domain.ErrBadRequest
	}
	return s.repo.ListReceiptsByDateRange(ctx, from, to)
}

func (s *Service) ListReceiptsByCourier(ctx context.Context, courier string) ([]*domain.MoneyReceipt, error) {
	if courier == "" {
		return nil, domain.ErrBadRequest
	}
	return s.repo.ListReceiptsByCourier(ctx, courier)
}

func (s *Service) ReceiptStatistics(ctx context.Context) (*domain.ReceiptStatistics, error) {
	stats, err := s.repo.ReceiptStatistics(ctx, time.Now())
	if err != nil {
		s.logger.Error("Receipt statistics", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

func (s *Service) DeleteReceipt(ctx context.Context, id uint64) error {
	receipt, err := s.repo.ReadReceipt(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteReceipt(ctx, id); err != nil {
		return err
	}
	if receipt.ReceiptPhoto != "" {
		if err := s.files.Remove(receipt.ReceiptPhoto); err != nil {
			s.logger.Warn("Remove receipt photo", zap.Error(err),
				zap.String("photo", receipt.ReceiptPhoto))
		}
	}
	return nil
}
