package mysqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.PaymentStore = (*PaymentRepo)(nil)

const paymentColumns = "id,email,price,currency,transaction_id,cart_ids,status,paid_at"

type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func scanPayment(row rowScanner) (model.Payment, error) {
	var (
		p    model.Payment
		cart []byte
	)
	if err := row.Scan(&p.ID, &p.Email, &p.Price, &p.Currency, &p.TransactionID, &cart, &p.Status, &p.Date); err != nil {
		return model.Payment{}, err
	}
	if err := json.Unmarshal(cart, &p.CartIDs); err != nil {
		return model.Payment{}, fmt.Errorf("decode cart_ids of payment %s: %w", p.ID, err)
	}
	return p, nil
}

func (r *PaymentRepo) query(ctx context.Context, q string, args ...any) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) Insert(ctx context.Context, p model.Payment) (model.InsertResult, error) {
	if p.CartIDs == nil {
		p.CartIDs = []model.ID{}
	}
	cart, err := json.Marshal(p.CartIDs)
	if err != nil {
		return model.InsertResult{}, err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO payments ("+paymentColumns+") VALUES (?,?,?,?,?,?,?,?)",
		p.ID, p.Email, p.Price, p.Currency, p.TransactionID, cart, p.Status, p.Date)
	if err != nil {
		return model.InsertResult{}, err
	}
	return inserted(p.ID), nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	return r.query(ctx, "SELECT "+paymentColumns+" FROM payments ORDER BY paid_at, id")
}

func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	return r.query(ctx, "SELECT "+paymentColumns+" FROM payments WHERE email=? ORDER BY paid_at, id", email)
}

func (r *PaymentRepo) SetStatus(ctx context.Context, id model.ID, status string) (model.UpdateResult, error) {
	return updateOne(ctx, r.db,
		"SELECT COUNT(*) FROM payments WHERE id=? FOR UPDATE", []any{id},
		"UPDATE payments SET status=? WHERE id=?", status, id)
}

func (r *PaymentRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return deleteWhere(ctx, r.db, "DELETE FROM payments WHERE id=?", id)
}
