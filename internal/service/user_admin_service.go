package service

import (
	"context"
	"errors"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/repo"
)

var ErrInvalidStatus = errors.New("status must be active or suspended")

// UserAdminService backs the back-office user management screens.
type UserAdminService struct {
	users *repo.UserRepo
}

func NewUserAdminService(ur *repo.UserRepo) *UserAdminService {
	return &UserAdminService{users: ur}
}

func (s *UserAdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}

// SetUserStatus flips a user between active and suspended. A suspended
// user fails the auth middleware's active check on their next request.
func (s *UserAdminService) SetUserStatus(ctx context.Context, userID, status string) error {
	if status != "active" && status != "suspended" {
		return ErrInvalidStatus
	}
	return s.users.UpdateStatus(ctx, userID, status)
}
