package repository

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

var receiptColumns = []string{
	"id", "courier_name", "total_amount", "invoice_codes", "receipt_photo",
	"received_by", "received_at", "notes", "created_at",
}

func scanReceipt(row rowScanner) (*domain.MoneyReceipt, error) {
	receipt := domain.MoneyReceipt{}
	var codes string
	err := row.Scan(
		&receipt.ID,
		&receipt.CourierName,
		&receipt.TotalAmount,
		&codes,
		&receipt.ReceiptPhoto,
		&receipt.ReceivedBy,
		&receipt.ReceivedAt,
		&receipt.Notes,
		&receipt.CreatedAt,
	)
	if err != nil {
		return nil, dataError(err)
	}
	if err := json.Unmarshal([]byte(codes), &receipt.InvoiceCodes); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *Repository) OutstandingCashByCourier(ctx context.Context) ([]*domain.CourierCash, error) {
	statement := r.db.QueryBuilder.
		Select("delivered_by", "count(*)", "sum(amount_collected)").
		From("orders").
		Where(sq.Eq{"status": domain.OrderStatusDelivered, "payment_method": domain.PaymentCash}).
		Where(sq.Gt{"amount_collected": 0}).
		Where(sq.Eq{"money_received_at": nil}).
		GroupBy("delivered_by").
		OrderBy("delivered_by ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataError(err)
	}
	defer rows.Close()

	summary := make([]*domain.CourierCash, 0)
	for rows.Next() {
		cc := domain.CourierCash{}
		if err := rows.Scan(&cc.Courier, &cc.DeliveryCount, &cc.TotalAmount); err != nil {
			return nil, err
		}
		summary = append(summary, &cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *Repository) ListOutstandingOrders(ctx context.Context, courier string) ([]*domain.Order, error) {
	return r.listOrdersWhere(ctx, sq.And{
		sq.Eq{
			"status":            domain.OrderStatusDelivered,
			"payment_method":    domain.PaymentCash,
			"delivered_by":      courier,
			"money_received_at": nil,
		},
		sq.Gt{"amount_collected": 0},
	})
}

// CreateReceipt inserts the receipt and settles the covered orders in
// one transaction: each order's collected amount is zeroed and stamped
// with the receipt back-reference, and the audit entries are appended.
func (r *Repository) CreateReceipt(ctx context.Context, receipt *domain.MoneyReceipt,
	settled []*domain.Order, history []domain.HistoryEntry) (*domain.MoneyReceipt, error) {
	codes, err := json.Marshal(receipt.InvoiceCodes)
	if err != nil {
		return nil, err
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Insert("money_receipts").
			Columns("courier_name", "total_amount", "invoice_codes",
				"receipt_photo", "received_by", "received_at", "notes").
			Values(receipt.CourierName, receipt.TotalAmount, string(codes),
				receipt.ReceiptPhoto, receipt.ReceivedBy, receipt.ReceivedAt,
				receipt.Notes).
			Suffix("returning id, created_at")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&receipt.ID, &receipt.CreatedAt)
		if err != nil {
			return err
		}

		byOrder := make(map[uint64][]domain.HistoryEntry)
		for _, h := range history {
			byOrder[h.OrderID] = append(byOrder[h.OrderID], h)
		}

		for _, order := range settled {
			order.ReceiptID = &receipt.ID

			upd := r.db.QueryBuilder.Update("orders").
				Set("amount_collected", order.AmountCollected).
				Set("money_received_at", order.MoneyReceivedAt).
				Set("money_received_by", order.MoneyReceivedBy).
				Set("receipt_id", order.ReceiptID).
				Set("updated_at", sq.Expr("now()")).
				Where(sq.Eq{"id": order.ID})

			sql, args, err := upd.ToSql()
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

			if err := insertHistoryTx(ctx, tx, r.db.QueryBuilder, order.ID, byOrder[order.ID]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, dataError(err)
	}

	return receipt, nil
}

func (r *Repository) ReadReceipt(ctx context.Context, id uint64) (*domain.MoneyReceipt, error) {
	statement := r.db.QueryBuilder.
		Select(receiptColumns...).
		From("money_receipts").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanReceipt(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ListReceipts(ctx context.Context) ([]*domain.MoneyReceipt, error) {
	return r.listReceiptsWhere(ctx, nil)
}

func (r *Repository) ListReceiptsByCourier(ctx context.Context, courier string) ([]*domain.MoneyReceipt, error) {
	return r.listReceiptsWhere(ctx, sq.Eq{"courier_name": courier})
}

func (r *Repository) ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]*domain.MoneyReceipt, error) {
	return r.listReceiptsWhere(ctx, sq.And{
		sq.GtOrEq{"received_at": from},
		sq.Lt{"received_at": to},
	})
}

func (r *Repository) listReceiptsWhere(ctx context.Context, pred any) ([]*domain.MoneyReceipt, error) {
	statement := r.db.QueryBuilder.
		Select(receiptColumns...).
		From("money_receipts").
		OrderBy("received_at DESC")
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

	list := make([]*domain.MoneyReceipt, 0)
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) ReceiptStatistics(ctx context.Context, day time.Time) (*domain.ReceiptStatistics, error) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())

	statement := r.db.QueryBuilder.
		Select("count(*)", "coalesce(sum(total_amount), 0)", "count(distinct courier_name)").
		From("money_receipts").
		Where(sq.And{
			sq.GtOrEq{"received_at": from},
			sq.Lt{"received_at": from.AddDate(0, 0, 1)},
		})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	stats := domain.ReceiptStatistics{Date: from.Format("2006-01-02")}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&stats.TotalReceipts, &stats.TotalAmount, &stats.UniqueCouriers)
	if err != nil {
		return nil, dataError(err)
	}

	return &stats, nil
}

func (r *Repository) DeleteReceipt(ctx context.Context, id uint64) error {
	statement := r.db.QueryBuilder.Delete("money_receipts").Where(sq.Eq{"id": id})

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
