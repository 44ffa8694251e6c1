package repo

import (
	"context"
	"database/sql"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

const userColumns = `id, first_name, last_name, username, email, phone_number,
	avatar_url, is_admin, status, created_at, updated_at`

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	row := r.db.QueryRowContext(ctx, q, id)

	var u models.User
	if err := scanUser(row, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	q := `SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateStatus(ctx context.Context, id, status string) error {
	q := `UPDATE users SET status=$2, updated_at=NOW() WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanUser(row rowScanner, u *models.User) error {
	return row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.Phone, &u.AvatarURL, &u.IsAdmin, &u.Status, &u.CreatedAt, &u.UpdatedAt)
}
