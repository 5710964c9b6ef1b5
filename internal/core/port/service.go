package port

import (
	"context"
	"time"

	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, username string, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, id uint64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint64) error
	ChangePassword(ctx context.Context, id uint64, oldPassword, newPassword string) error

	CreateOrder(ctx context.Context, order *domain.Order, actor string) (*domain.Order, error)
	GetOrder(ctx context.Context, id uint64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, id uint64, patch domain.OrderPatch, actor string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uint64) error
	OrderStatistics(ctx context.Context) (*domain.OrderStatistics, error)

	VerifyPayment(ctx context.Context, id uint64, input domain.VerifyPaymentInput, actor string) (*domain.Order, error)
	AssignLogistics(ctx context.Context, id uint64, input domain.AssignmentInput, actor string) (*domain.Order, error)
	Deliver(ctx context.Context, id uint64, input domain.DeliveryInput, actor string) (*domain.Order, error)

	CourierCashSummary(ctx context.Context) ([]*domain.CourierCash, error)
	OutstandingOrders(ctx context.Context, courier string) ([]*domain.Order, error)
	ConfirmReceipt(ctx context.Context, input domain.ReceiptInput, actor string) (*domain.MoneyReceipt, error)
	GetReceipt(ctx context.Context, id uint64) (*domain.MoneyReceipt, error)
	ListReceipts(ctx context.Context) ([]*domain.MoneyReceipt, error)
	ListReceiptsToday(ctx context.Context) ([]*domain.MoneyReceipt, error)
	ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]*domain.MoneyReceipt, error)
	ListReceiptsByCourier(ctx context.Context, courier string) ([]*domain.MoneyReceipt, error)
	ReceiptStatistics(ctx context.Context) (*domain.ReceiptStatistics, error)
	DeleteReceipt(ctx context.Context, id uint64) error
}
