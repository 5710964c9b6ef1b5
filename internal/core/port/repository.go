package port

import (
	"context"
	"time"

	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, id uint64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint64) error

	// Order. Updates append the supplied history entries in the same
	// transaction as the row change.
	CreateOrder(ctx context.Context, order *domain.Order, history []domain.HistoryEntry) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order, history []domain.HistoryEntry) (*domain.Order, error)
	ReadOrder(ctx context.Context, id uint64) (*domain.Order, error)
	ReadOrderByInvoiceCode(ctx context.Context, code string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	DeleteOrder(ctx context.Context, id uint64) error
	OrderStatistics(ctx context.Context) (*domain.OrderStatistics, error)

	// Cash ledger
	OutstandingCashByCourier(ctx context.Context) ([]*domain.CourierCash, error)
	ListOutstandingOrders(ctx context.Context, courier string) ([]*domain.Order, error)
	CreateReceipt(ctx context.Context, receipt *domain.MoneyReceipt,
		settled []*domain.Order, history []domain.HistoryEntry) (*domain.MoneyReceipt, error)
	ReadReceipt(ctx context.Context, id uint64) (*domain.MoneyReceipt, error)
	ListReceipts(ctx context.Context) ([]*domain.MoneyReceipt, error)
	ListReceiptsByCourier(ctx context.Context, courier string) ([]*domain.MoneyReceipt, error)
	ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]*domain.MoneyReceipt, error)
	ReceiptStatistics(ctx context.Context, day time.Time) (*domain.ReceiptStatistics, error)
	DeleteReceipt(ctx context.Context, id uint64) error
}
