package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port/mock"
	"github.com/toppingfrozen/ordertrack/internal/core/service"
	"go.uber.org/zap"
)

var testCarriers = domain.CarrierDirectory{
	Local:    []string{"Local-A", "Local-B"},
	National: []string{"National-A"},
}

func newTestService(t *testing.T, ctrl *gomock.Controller,
	repo *mock.MockRepository) *service.Service {
	t.Helper()

	logger, _ := zap.NewProduction()
	s, err := service.NewService(repo, mock.NewMockTokenService(ctrl),
		mock.NewMockFileStore(ctrl), testCarriers, logger)
	require.NoError(t, err)
	return s
}

func testOrder(status domain.OrderStatus,
	dm domain.DeliveryMethod, pm domain.PaymentMethod) *domain.Order {
	return &domain.Order{
		ID:              1,
		InvoiceCode:     "FAC-001",
		ClientName:      "Juan Pérez",
		DeliveryMethod:  dm,
		PaymentMethod:   pm,
		TotalAmount:     decimal.MustParse("50000"),
		Status:          status,
		PaymentStatus:   domain.PaymentStatusPending,
		BilledBy:        "billing",
		AmountCollected: decimal.Zero,
	}
}

// expectUpdate wires the read-modify-write round trip: the repository
// returns the order under test and echoes back whatever update the
// service persists.
func expectUpdate(repo *mock.MockRepository, order *domain.Order) {
	repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
	repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order, _ []domain.HistoryEntry) (*domain.Order, error) {
			return o, nil
		})
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("create good order", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadOrderByInvoiceCode(gomock.Any(), "FAC-001").
			Return(nil, domain.ErrDataNotFound)
		repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order, history []domain.HistoryEntry) (*domain.Order, error) {
				require.Len(t, history, 1)
				assert.Equal(t, "status", history[0].Field)
				assert.Equal(t, "", history[0].OldValue)
				assert.Equal(t, string(domain.OrderStatusPendingWallet), history[0].NewValue)
				assert.Equal(t, "billing", history[0].User)
				return o, nil
			})

		s := newTestService(t, mockCtrl, repo)

		order := &domain.Order{
			InvoiceCode:    "FAC-001",
			ClientName:     "Juan Pérez",
			DeliveryMethod: domain.DeliveryLocal,
			PaymentMethod:  domain.PaymentCash,
			TotalAmount:    decimal.MustParse("50000"),
		}
		created, err := s.CreateOrder(context.Background(), order, "billing")

		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPendingWallet, created.Status)
		assert.Equal(t, domain.PaymentStatusPending, created.PaymentStatus)
		assert.Equal(t, "billing", created.BilledBy)
	})

	t.Run("duplicate invoice code", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().ReadOrderByInvoiceCode(gomock.Any(), "FAC-001").
			Return(testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash), nil)

		s := newTestService(t, mockCtrl, repo)

		order := &domain.Order{
			InvoiceCode:    "FAC-001",
			ClientName:     "Juan Pérez",
			DeliveryMethod: domain.DeliveryLocal,
			PaymentMethod:  domain.PaymentCash,
		}
		created, err := s.CreateOrder(context.Background(), order, "billing")

		assert.Nil(t, created)
		assert.Equal(t, domain.ErrConflictingData, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		s := newTestService(t, mockCtrl, repo)

		_, err := s.CreateOrder(context.Background(), &domain.Order{InvoiceCode: "FAC-002"}, "billing")

		assert.Equal(t, domain.ErrBadRequest, err)
	})
}

func TestService_VerifyPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	type verifyTest struct {
		name      string
		order     *domain.Order
		input     domain.VerifyPaymentInput
		expError  error
		expStatus domain.OrderStatus
	}

	tests := []verifyTest{
		{
			name:  "local delivery passes with pending payment",
			order: testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusPending,
			},
			expStatus: domain.OrderStatusPendingLogistics,
		},
		{
			name:  "store-pickup rejected while payment pending",
			order: testOrder(domain.OrderStatusPendingWallet, domain.DeliveryStorePickup, domain.PaymentTransfer),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusPending,
			},
			expError: domain.ErrPaymentPolicy,
		},
		{
			name:  "store-pickup paid with proof",
			order: testOrder(domain.OrderStatusPendingWallet, domain.DeliveryStorePickup, domain.PaymentTransfer),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusPaid,
				PaymentProof:  "proof-001.jpg",
			},
			expStatus: domain.OrderStatusPendingLogistics,
		},
		{
			name:  "marking paid requires a proof",
			order: testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentTransfer),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusPaid,
			},
			expError: domain.ErrProofRequired,
		},
		{
			name:  "shipment on approved credit",
			order: testOrder(domain.OrderStatusPendingWallet, domain.DeliveryInternational, domain.PaymentTransfer),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusCreditApproved,
			},
			expStatus: domain.OrderStatusPendingLogistics,
		},
		{
			name:  "already verified",
			order: testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryLocal, domain.PaymentCash),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusPaid,
				PaymentProof:  "proof-001.jpg",
			},
			expError: domain.ErrStatusSkip,
		},
		{
			name:  "terminal order untouchable",
			order: testOrder(domain.OrderStatusDelivered, domain.DeliveryLocal, domain.PaymentCash),
			input: domain.VerifyPaymentInput{
				PaymentStatus: domain.PaymentStatusPaid,
				PaymentProof:  "proof-001.jpg",
			},
			expError: domain.ErrOrderDelivered,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			if test.expError == nil {
				expectUpdate(repo, test.order)
			} else {
				repo.EXPECT().ReadOrder(gomock.Any(), test.order.ID).Return(test.order, nil)
			}

			s := newTestService(t, mockCtrl, repo)

			result, err := s.VerifyPayment(context.Background(), test.order.ID, test.input, "cartera")

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				require.NotNil(t, result)
				assert.Equal(t, test.expStatus, result.Status)
				assert.Equal(t, test.input.PaymentStatus, result.PaymentStatus)
			}
		})
	}
}

func TestService_AssignLogistics(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	type assignTest struct {
		name       string
		order      *domain.Order
		input      domain.AssignmentInput
		expError   error
		expWeight  string
		expCarrier string
	}

	tests := []assignTest{
		{
			name:       "assign weight and local carrier",
			order:      testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryLocal, domain.PaymentCash),
			input:      domain.AssignmentInput{Weight: "500", Carrier: "Local-A"},
			expWeight:  "500",
			expCarrier: "Local-A",
		},
		{
			name:       "no-weight mark accepted",
			order:      testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryDomestic, domain.PaymentTransfer),
			input:      domain.AssignmentInput{NoWeight: true, Carrier: "National-A"},
			expWeight:  domain.NoWeightMark,
			expCarrier: "National-A",
		},
		{
			name:     "weight required",
			order:    testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.AssignmentInput{Carrier: "Local-A"},
			expError: domain.ErrWeightRequired,
		},
		{
			name:     "national carrier not allowed for local delivery",
			order:    testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.AssignmentInput{Weight: "500", Carrier: "National-A"},
			expError: domain.ErrCarrierNotAllowed,
		},
		{
			name:     "store-pickup never assigned",
			order:    testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryStorePickup, domain.PaymentTransfer),
			input:    domain.AssignmentInput{Weight: "500"},
			expError: domain.ErrStorePickupAssign,
		},
		{
			name:     "wrong stage",
			order:    testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.AssignmentInput{Weight: "500", Carrier: "Local-A"},
			expError: domain.ErrStatusSkip,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			if test.expError == nil {
				expectUpdate(repo, test.order)
			} else {
				repo.EXPECT().ReadOrder(gomock.Any(), test.order.ID).Return(test.order, nil)
			}

			s := newTestService(t, mockCtrl, repo)

			result, err := s.AssignLogistics(context.Background(), test.order.ID, test.input, "logistica")

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				require.NotNil(t, result)
				assert.Equal(t, domain.OrderStatusPending, result.Status)
				assert.Equal(t, test.expWeight, result.Weight)
				assert.Equal(t, test.expCarrier, result.Recipient)
			}
		})
	}
}

func TestService_Deliver(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	collected := decimal.MustParse("50000")

	type deliverTest struct {
		name         string
		order        *domain.Order
		input        domain.DeliveryInput
		expError     error
		expCollected decimal.Decimal
	}

	tests := []deliverTest{
		{
			name:         "cash delivery records collected amount",
			order:        testOrder(domain.OrderStatusPending, domain.DeliveryLocal, domain.PaymentCash),
			input:        domain.DeliveryInput{DeliveryProof: "proof-002.jpg", AmountCollected: collected},
			expCollected: collected,
		},
		{
			name:         "store-pickup delivered straight from logistics stage",
			order:        testOrder(domain.OrderStatusPendingLogistics, domain.DeliveryStorePickup, domain.PaymentTransfer),
			input:        domain.DeliveryInput{DeliveryProof: "proof-002.jpg"},
			expCollected: decimal.Zero,
		},
		{
			name:         "non-cash ignores collected amount",
			order:        testOrder(domain.OrderStatusPending, domain.DeliveryLocal, domain.PaymentCreditCard),
			input:        domain.DeliveryInput{DeliveryProof: "proof-002.jpg", AmountCollected: collected},
			expCollected: decimal.Zero,
		},
		{
			name:     "proof required",
			order:    testOrder(domain.OrderStatusPending, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.DeliveryInput{AmountCollected: collected},
			expError: domain.ErrProofRequired,
		},
		{
			name:     "cash needs positive collected amount",
			order:    testOrder(domain.OrderStatusPending, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.DeliveryInput{DeliveryProof: "proof-002.jpg"},
			expError: domain.ErrCollectedAmount,
		},
		{
			name:     "cannot skip to delivered",
			order:    testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.DeliveryInput{DeliveryProof: "proof-002.jpg", AmountCollected: collected},
			expError: domain.ErrStatusSkip,
		},
		{
			name:     "already delivered",
			order:    testOrder(domain.OrderStatusDelivered, domain.DeliveryLocal, domain.PaymentCash),
			input:    domain.DeliveryInput{DeliveryProof: "proof-002.jpg", AmountCollected: collected},
			expError: domain.ErrOrderDelivered,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			if test.expError == nil {
				expectUpdate(repo, test.order)
			} else {
				repo.EXPECT().ReadOrder(gomock.Any(), test.order.ID).Return(test.order, nil)
			}

			s := newTestService(t, mockCtrl, repo)

			result, err := s.Deliver(context.Background(), test.order.ID, test.input, "mensajero")

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				require.NotNil(t, result)
				assert.Equal(t, domain.OrderStatusDelivered, result.Status)
				assert.Equal(t, "mensajero", result.DeliveredBy)
				assert.NotNil(t, result.DeliveryDate)
				assert.Equal(t, test.expCollected, result.AmountCollected)
			}
		})
	}
}

func TestService_UpdateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("generic update cannot skip a stage", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		order := testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash)
		repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)

		s := newTestService(t, mockCtrl, repo)

		target := domain.OrderStatusDelivered
		_, err := s.UpdateOrder(context.Background(), order.ID,
			domain.OrderPatch{Status: &target}, "admin")

		assert.Equal(t, domain.ErrStatusSkip, err)
	})

	t.Run("field change produces a history entry", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		order := testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash)
		repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
		repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order, history []domain.HistoryEntry) (*domain.Order, error) {
				require.Len(t, history, 1)
				assert.Equal(t, "client_name", history[0].Field)
				assert.Equal(t, "Juan Pérez", history[0].OldValue)
				assert.Equal(t, "María López", history[0].NewValue)
				assert.Equal(t, "admin", history[0].User)
				return o, nil
			})

		s := newTestService(t, mockCtrl, repo)

		name := "María López"
		updated, err := s.UpdateOrder(context.Background(), order.ID,
			domain.OrderPatch{ClientName: &name}, "admin")

		require.NoError(t, err)
		assert.Equal(t, name, updated.ClientName)
	})

	t.Run("no-op update rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		order := testOrder(domain.OrderStatusPendingWallet, domain.DeliveryLocal, domain.PaymentCash)
		repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)

		s := newTestService(t, mockCtrl, repo)

		_, err := s.UpdateOrder(context.Background(), order.ID, domain.OrderPatch{}, "admin")

		assert.Equal(t, domain.ErrNoUpdatedData, err)
	})
}
