package repo

import (
	"context"
	"database/sql"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

type PositionRepo struct{ db *sql.DB }

func NewPositionRepo(db *sql.DB) *PositionRepo { return &PositionRepo{db: db} }

func (r *PositionRepo) GetByUserID(ctx context.Context, userID string) ([]models.Position, error) {
	q := `
SELECT id, user_id, symbol, side, quantity::float8, entry_price::float8, created_at, updated_at
FROM positions
WHERE user_id=$1
ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.UserID, &p.Symbol, &p.Side, &p.Quantity,
			&p.EntryPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// GetForUpdate locks the user's holding of a symbol on one side, if any.
func (r *PositionRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, userID, symbol string, side models.TradeSide) (*models.Position, error) {
	q := `
SELECT id, user_id, symbol, side, quantity::float8, entry_price::float8, created_at, updated_at
FROM positions
WHERE user_id=$1 AND symbol=$2 AND side=$3
FOR UPDATE`
	row := tx.QueryRowContext(ctx, q, userID, symbol, side)

	var p models.Position
	if err := row.Scan(&p.ID, &p.UserID, &p.Symbol, &p.Side, &p.Quantity,
		&p.EntryPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PositionRepo) Insert(ctx context.Context, tx *sql.Tx, p *models.Position) error {
	q := `
INSERT INTO positions(user_id, symbol, side, quantity, entry_price)
VALUES($1,$2,$3,$4,$5)
RETURNING id, created_at, updated_at`
	return tx.QueryRowContext(ctx, q,
		p.UserID, p.Symbol, p.Side, p.Quantity, p.EntryPrice,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PositionRepo) UpdateLot(ctx context.Context, tx *sql.Tx, id string, quantity, entryPrice float64) error {
	q := `UPDATE positions SET quantity=$2, entry_price=$3, updated_at=NOW() WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id, quantity, entryPrice)
	return err
}

func (r *PositionRepo) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	q := `DELETE FROM positions WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}
