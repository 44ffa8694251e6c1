package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone_number" json:"phone_number"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	IsAdmin   bool      `db:"is_admin" json:"is_admin"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type UserAuth struct {
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	PasswordHash string     `db:"password_hash" json:"password_hash"`
	LastPassword *time.Time `db:"last_password_change" json:"last_password_change"`
}
