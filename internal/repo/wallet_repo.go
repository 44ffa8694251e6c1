package repo

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

type WalletRepo struct{ db *sql.DB }

func NewWalletRepo(db *sql.DB) *WalletRepo { return &WalletRepo{db: db} }

func (r *WalletRepo) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	q := `SELECT id, user_id, balance, updated_at FROM wallets WHERE user_id=$1`
	row := r.db.QueryRowContext(ctx, q, userID)

	var w models.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// GetForUpdate locks the wallet row for the duration of the transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*models.Wallet, error) {
	q := `SELECT id, user_id, balance, updated_at FROM wallets WHERE user_id=$1 FOR UPDATE`
	row := tx.QueryRowContext(ctx, q, userID)

	var w models.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// ApplyDelta adds a signed amount to the wallet balance. Callers are
// expected to hold the row lock and to have checked for overdraft.
func (r *WalletRepo) ApplyDelta(ctx context.Context, tx *sql.Tx, userID string, delta decimal.Decimal) error {
	q := `UPDATE wallets SET balance = balance + $2, updated_at = NOW() WHERE user_id=$1`
	_, err := tx.ExecContext(ctx, q, userID, delta)
	return err
}
