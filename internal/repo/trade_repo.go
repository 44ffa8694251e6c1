package repo

import (
	"context"
	"database/sql"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

const tradeColumns = `id, user_id, symbol, side, quantity::float8, price::float8,
	status, admin_note, reviewed_by, reviewed_at, created_at, updated_at`

type TradeRepo struct{ db *sql.DB }

func NewTradeRepo(db *sql.DB) *TradeRepo { return &TradeRepo{db: db} }

func (r *TradeRepo) Insert(ctx context.Context, t *models.Trade) error {
	q := `
INSERT INTO trades(user_id, symbol, side, quantity, status)
VALUES($1,$2,$3,$4,$5)
RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		t.UserID, t.Symbol, t.Side, t.Quantity, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TradeRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Trade, error) {
	q := `SELECT ` + tradeColumns + `
FROM trades
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

func (r *TradeRepo) ListByStatus(ctx context.Context, status models.TradeStatus, limit int) ([]models.Trade, error) {
	q := `SELECT ` + tradeColumns + `
FROM trades
WHERE status=$1
ORDER BY created_at ASC
LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

func (r *TradeRepo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Trade, error) {
	q := `SELECT ` + tradeColumns + `
FROM trades WHERE id=$1 FOR UPDATE`
	row := tx.QueryRowContext(ctx, q, id)

	var t models.Trade
	if err := scanTrade(row, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Resolve finishes the review of a pending trade. Price is nil on reject.
func (r *TradeRepo) Resolve(ctx context.Context, tx *sql.Tx, id string, status models.TradeStatus, price *float64, reviewedBy string, note *string) error {
	q := `
UPDATE trades
SET status=$2, price=$3, reviewed_by=$4, admin_note=$5, reviewed_at=NOW(), updated_at=NOW()
WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id, status, price, reviewedBy, note)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner, t *models.Trade) error {
	return row.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Side, &t.Quantity, &t.Price,
		&t.Status, &t.AdminNote, &t.ReviewedBy, &t.ReviewedAt, &t.CreatedAt, &t.UpdatedAt)
}

func scanTrades(rows *sql.Rows) ([]models.Trade, error) {
	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := scanTrade(rows, &t); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
