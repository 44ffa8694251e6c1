package repo

import (
	"context"
	"database/sql"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

const depositColumns = `id, user_id, amount, method, status, reviewed_by, reviewed_at, created_at`

type DepositRepo struct{ db *sql.DB }

func NewDepositRepo(db *sql.DB) *DepositRepo { return &DepositRepo{db: db} }

func (r *DepositRepo) Insert(ctx context.Context, d *models.Deposit) error {
	q := `
INSERT INTO deposits(user_id, amount, method, status)
VALUES($1,$2,$3,$4)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		d.UserID, d.Amount, d.Method, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *DepositRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Deposit, error) {
	q := `SELECT ` + depositColumns + `
FROM deposits
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeposits(rows)
}

func (r *DepositRepo) ListByStatus(ctx context.Context, status models.DepositStatus, limit int) ([]models.Deposit, error) {
	q := `SELECT ` + depositColumns + `
FROM deposits
WHERE status=$1
ORDER BY created_at ASC
LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeposits(rows)
}

func (r *DepositRepo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Deposit, error) {
	q := `SELECT ` + depositColumns + `
FROM deposits WHERE id=$1 FOR UPDATE`
	row := tx.QueryRowContext(ctx, q, id)

	var d models.Deposit
	if err := row.Scan(&d.ID, &d.UserID, &d.Amount, &d.Method, &d.Status,
		&d.ReviewedBy, &d.ReviewedAt, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepositRepo) Resolve(ctx context.Context, tx *sql.Tx, id string, status models.DepositStatus, reviewedBy string) error {
	q := `UPDATE deposits SET status=$2, reviewed_by=$3, reviewed_at=NOW() WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id, status, reviewedBy)
	return err
}

func scanDeposits(rows *sql.Rows) ([]models.Deposit, error) {
	var deposits []models.Deposit
	for rows.Next() {
		var d models.Deposit
		if err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.Method, &d.Status,
			&d.ReviewedBy, &d.ReviewedAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}
