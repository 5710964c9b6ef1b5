package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port/mock"
	"github.com/toppingfrozen/ordertrack/internal/core/service"
	"go.uber.org/zap"
)

func deliveredCashOrder(id uint64, code, courier, amount string) *domain.Order {
	date := time.Now().Add(-24 * time.Hour)
	return &domain.Order{
		ID:              id,
		InvoiceCode:     code,
		ClientName:      "Juan Pérez",
		DeliveryMethod:  domain.DeliveryLocal,
		PaymentMethod:   domain.PaymentCash,
		TotalAmount:     decimal.MustParse(amount),
		Status:          domain.OrderStatusDelivered,
		PaymentStatus:   domain.PaymentStatusPaid,
		AmountCollected: decimal.MustParse(amount),
		DeliveryDate:    &date,
		DeliveredBy:     courier,
	}
}

func TestService_ConfirmReceipt(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("subset of invoices settles only those orders", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadOrderByInvoiceCode(gomock.Any(), "FAC-100").
			Return(deliveredCashOrder(1, "FAC-100", "mensajero", "50000"), nil)
		repo.EXPECT().ReadOrderByInvoiceCode(gomock.Any(), "FAC-101").
			Return(deliveredCashOrder(2, "FAC-101", "mensajero", "30000"), nil)
		repo.EXPECT().CreateReceipt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, receipt *domain.MoneyReceipt,
				settled []*domain.Order, history []domain.HistoryEntry) (*domain.MoneyReceipt, error) {
				assert.Equal(t, decimal.MustParse("80000"), receipt.TotalAmount)
				require.Len(t, settled, 2)
				for _, o := range settled {
					assert.Equal(t, decimal.Zero, o.AmountCollected)
					assert.NotNil(t, o.MoneyReceivedAt)
					assert.Equal(t, "cartera", o.MoneyReceivedBy)
				}
				// amount_collected, money_received_at and
				// money_received_by change on each order
				assert.Len(t, history, 6)
				receipt.ID = 7
				return receipt, nil
			})

		s := newTestService(t, mockCtrl, repo)

		receipt, err := s.ConfirmReceipt(context.Background(), domain.ReceiptInput{
			CourierName:  "mensajero",
			InvoiceCodes: []string{"FAC-100", "FAC-101"},
		}, "cartera")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), receipt.ID)
		assert.Equal(t, "cartera", receipt.ReceivedBy)
		assert.Equal(t, []string{"FAC-100", "FAC-101"}, receipt.InvoiceCodes)
	})

	t.Run("invoice of another courier rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadOrderByInvoiceCode(gomock.Any(), "FAC-100").
			Return(deliveredCashOrder(1, "FAC-100", "otro", "50000"), nil)

		s := newTestService(t, mockCtrl, repo)

		_, err := s.ConfirmReceipt(context.Background(), domain.ReceiptInput{
			CourierName:  "mensajero",
			InvoiceCodes: []string{"FAC-100"},
		}, "cartera")

		assert.Equal(t, domain.ErrInvoiceNotOutstanding, err)
	})

	t.Run("already settled invoice rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		settled := deliveredCashOrder(1, "FAC-100", "mensajero", "50000")
		received := time.Now()
		settled.AmountCollected = decimal.Zero
		settled.MoneyReceivedAt = &received
		repo.EXPECT().ReadOrderByInvoiceCode(gomock.Any(), "FAC-100").
			Return(settled, nil)

		s := newTestService(t, mockCtrl, repo)

		_, err := s.ConfirmReceipt(context.Background(), domain.ReceiptInput{
			CourierName:  "mensajero",
			InvoiceCodes: []string{"FAC-100"},
		}, "cartera")

		assert.Equal(t, domain.ErrInvoiceNotOutstanding, err)
	})

	t.Run("repeated invoice code rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)

		s := newTestService(t, mockCtrl, repo)

		_, err := s.ConfirmReceipt(context.Background(), domain.ReceiptInput{
			CourierName:  "mensajero",
			InvoiceCodes: []string{"FAC-100", "FAC-100"},
		}, "cartera")

		assert.Equal(t, domain.ErrBadRequest, err)
	})

	t.Run("empty invoice list rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		s := newTestService(t, mockCtrl, repo)

		_, err := s.ConfirmReceipt(context.Background(), domain.ReceiptInput{
			CourierName: "mensajero",
		}, "cartera")

		assert.Equal(t, domain.ErrEmptyReceipt, err)
	})

	t.Run("courier name required", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		s := newTestService(t, mockCtrl, repo)

		_, err := s.ConfirmReceipt(context.Background(), domain.ReceiptInput{
			InvoiceCodes: []string{"FAC-100"},
		}, "cartera")

		assert.Equal(t, domain.ErrBadRequest, err)
	})
}

func TestService_CourierCashSummary(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	repo.EXPECT().OutstandingCashByCourier(gomock.Any()).
		Return([]*domain.CourierCash{
			{Courier: "mensajero", DeliveryCount: 2, TotalAmount: decimal.MustParse("80000")},
		}, nil)

	s := newTestService(t, mockCtrl, repo)

	summary, err := s.CourierCashSummary(context.Background())

	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "mensajero", summary[0].Courier)
	assert.Equal(t, 2, summary[0].DeliveryCount)
}

func TestService_ListReceiptsByDateRange(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 7)

	t.Run("valid range", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ListReceiptsByDateRange(gomock.Any(), from, to).
			Return([]*domain.MoneyReceipt{}, nil)

		s := newTestService(t, mockCtrl, repo)

		_, err := s.ListReceiptsByDateRange(context.Background(), from, to)
		assert.NoError(t, err)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		s := newTestService(t, mockCtrl, repo)

		_, err := s.ListReceiptsByDateRange(context.Background(), to, from)
		assert.Equal(t, domain.ErrBadRequest, err)
	})
}

func TestService_DeleteReceipt(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("removes stored photo", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		files := mock.NewMockFileStore(mockCtrl)
		repo.EXPECT().ReadReceipt(gomock.Any(), uint64(7)).
			Return(&domain.MoneyReceipt{ID: 7, ReceiptPhoto: "receipt-abc.jpg"}, nil)
		repo.EXPECT().DeleteReceipt(gomock.Any(), uint64(7)).Return(nil)
		files.EXPECT().Remove("receipt-abc.jpg").Return(nil)

		logger, _ := zap.NewProduction()
		s, err := service.NewService(repo, mock.NewMockTokenService(mockCtrl),
			files, testCarriers, logger)
		require.NoError(t, err)

		assert.NoError(t, s.DeleteReceipt(context.Background(), 7))
	})

	t.Run("unknown receipt", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadReceipt(gomock.Any(), uint64(9)).
			Return(nil, domain.ErrDataNotFound)

		s := newTestService(t, mockCtrl, repo)

		assert.Equal(t, domain.ErrDataNotFound, s.DeleteReceipt(context.Background(), 9))
	})
}
