package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

var orderColumns = []string{
	"id", "invoice_code", "client_name", "delivery_method", "payment_method",
	"total_amount", "status", "payment_status", "billed_by", "weight",
	"recipient", "address", "phone", "payment_proof", "delivery_proof",
	"amount_collected", "delivery_date", "delivered_by", "notes",
	"money_received_at", "money_received_by", "receipt_id",
	"created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.InvoiceCode,
		&order.ClientName,
		&order.DeliveryMethod,
		&order.PaymentMethod,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentStatus,
		&order.BilledBy,
		&order.Weight,
		&order.Recipient,
		&order.Address,
		&order.Phone,
		&order.PaymentProof,
		&order.DeliveryProof,
		&order.AmountCollected,
		&order.DeliveryDate,
		&order.DeliveredBy,
		&order.Notes,
		&order.MoneyReceivedAt,
		&order.MoneyReceivedBy,
		&order.ReceiptID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, dataError(err)
	}
	return &order, nil
}

func (r *Repository) CreateOrder(ctx context.Context,
	order *domain.Order, history []domain.HistoryEntry) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Insert("orders").
			Columns("invoice_code", "client_name", "delivery_method", "payment_method",
				"total_amount", "status", "payment_status", "billed_by", "weight",
				"recipient", "address", "phone", "notes", "amount_collected").
			Values(order.InvoiceCode, order.ClientName, order.DeliveryMethod,
				order.PaymentMethod, order.TotalAmount, order.Status,
				order.PaymentStatus, order.BilledBy, order.Weight,
				order.Recipient, order.Address, order.Phone, order.Notes,
				order.AmountCollected).
			Suffix("returning id, created_at, updated_at")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		return insertHistoryTx(ctx, tx, r.db.QueryBuilder, order.ID, history)
	})
	if err != nil {
		return nil, dataError(err)
	}

	return r.ReadOrder(ctx, order.ID)
}

func (r *Repository) ReadOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	return r.readOrderWhere(ctx, sq.Eq{"id": id})
}

func (r *Repository) ReadOrderByInvoiceCode(ctx context.Context, code string) (*domain.Order, error) {
	return r.readOrderWhere(ctx, sq.Eq{"invoice_code": code})
}

func (r *Repository) readOrderWhere(ctx context.Context, pred any) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(pred)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}

	order.History, err = r.orderHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return r.listOrdersWhere(ctx, nil)
}

func (r *Repository) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.listOrdersWhere(ctx, sq.Eq{"status": status})
}

func (r *Repository) listOrdersWhere(ctx context.Context, pred any) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")
	if pred != nil {
		statement = statement.Where(pred)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataError(err)
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachHistory(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateOrder rewrites the mutable columns and appends the history
// entries in one transaction, then returns the fresh row.
func (r *Repository) UpdateOrder(ctx context.Context,
	order *domain.Order, history []domain.HistoryEntry) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Update("orders").
			Set("client_name", order.ClientName).
			Set("delivery_method", order.DeliveryMethod).
			Set("payment_method", order.PaymentMethod).
			Set("total_amount", order.TotalAmount).
			Set("status", order.Status).
			Set("payment_status", order.PaymentStatus).
			Set("weight", order.Weight).
			Set("recipient", order.Recipient).
			Set("address", order.Address).
			Set("phone", order.Phone).
			Set("payment_proof", order.PaymentProof).
			Set("delivery_proof", order.DeliveryProof).
			Set("amount_collected", order.AmountCollected).
			Set("delivery_date", order.DeliveryDate).
			Set("delivered_by", order.DeliveredBy).
			Set("notes", order.Notes).
			Set("money_received_at", order.MoneyReceivedAt).
			Set("money_received_by", order.MoneyReceivedBy).
			Set("receipt_id", order.ReceiptID).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": order.ID})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		ct, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrDataNotFound
		}

		return insertHistoryTx(ctx, tx, r.db.QueryBuilder, order.ID, history)
	})
	if err != nil {
		return nil, dataError(err)
	}

	return r.ReadOrder(ctx, order.ID)
}

func (r *Repository) DeleteOrder(ctx context.Context, id uint64) error {
	statement := r.db.QueryBuilder.Delete("orders").Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return dataError(err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (r *Repository) OrderStatistics(ctx context.Context) (*domain.OrderStatistics, error) {
	statement := r.db.QueryBuilder.
		Select("status", "count(*)").
		From("orders").
		GroupBy("status")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataError(err)
	}
	defer rows.Close()

	stats := domain.OrderStatistics{}
	for rows.Next() {
		var status domain.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case domain.OrderStatusPendingWallet:
			stats.PendingWallet = count
		case domain.OrderStatusPendingLogistics:
			stats.PendingLogistics = count
		case domain.OrderStatusPending:
			stats.Pending = count
		case domain.OrderStatusDelivered:
			stats.Delivered = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

func insertHistoryTx(ctx context.Context, tx pgx.Tx,
	qb *sq.StatementBuilderType, orderID uint64, history []domain.HistoryEntry) error {
	if len(history) == 0 {
		return nil
	}

	statement := qb.Insert("order_history").
		Columns("order_id", "field", "old_value", "new_value", "date", `"user"`)
	for _, h := range history {
		statement = statement.Values(orderID, h.Field, h.OldValue, h.NewValue, h.Date, h.User)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) orderHistory(ctx context.Context, orderID uint64) ([]domain.HistoryEntry, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "field", "old_value", "new_value", "date", `"user"`).
		From("order_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("date ASC", "id ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataError(err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// attachHistory loads the trail for a page of orders in one query.
func (r *Repository) attachHistory(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(orders))
	byID := make(map[uint64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	statement := r.db.QueryBuilder.
		Select("id", "order_id", "field", "old_value", "new_value", "date", `"user"`).
		From("order_history").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("date ASC", "id ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return dataError(err)
	}
	defer rows.Close()

	entries, err := scanHistory(rows)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if o, ok := byID[e.OrderID]; ok {
			o.History = append(o.History, e)
		}
	}
	return nil
}

func scanHistory(rows pgx.Rows) ([]domain.HistoryEntry, error) {
	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		h := domain.HistoryEntry{}
		err := rows.Scan(&h.ID, &h.OrderID, &h.Field, &h.OldValue, &h.NewValue, &h.Date, &h.User)
		if err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
