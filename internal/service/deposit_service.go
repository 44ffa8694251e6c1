package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/repo"
)

var (
	ErrInvalidAmount          = errors.New("amount must be > 0")
	ErrDepositAlreadyReviewed = errors.New("deposit has already been reviewed")
)

type RequestDepositReq struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required"`
}

// DepositService owns the funding flow: customers request deposits, admins
// approve them, and only approval credits the wallet.
type DepositService struct {
	db       *sql.DB
	deposits *repo.DepositRepo
	wallets  *repo.WalletRepo
	cache    *CacheService
}

func NewDepositService(db *sql.DB, dr *repo.DepositRepo, wr *repo.WalletRepo, cache *CacheService) *DepositService {
	return &DepositService{db: db, deposits: dr, wallets: wr, cache: cache}
}

func (s *DepositService) RequestDeposit(ctx context.Context, userID string, req RequestDepositReq) (*models.Deposit, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	d := &models.Deposit{
		UserID: userID,
		Amount: amount.Round(2),
		Method: req.Method,
		Status: models.DepositPending,
	}
	if err := s.deposits.Insert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DepositService) ListDeposits(ctx context.Context, userID string, limit int) ([]models.Deposit, error) {
	return s.deposits.GetByUserID(ctx, userID, limit)
}

func (s *DepositService) ListByStatus(ctx context.Context, status models.DepositStatus, limit int) ([]models.Deposit, error) {
	return s.deposits.ListByStatus(ctx, status, limit)
}

func (s *DepositService) ApproveDeposit(ctx context.Context, depositID, adminID string) (*models.Deposit, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	d, err := s.deposits.GetByIDForUpdate(ctx, tx, depositID)
	if err != nil {
		return nil, err
	}
	if d.Status != models.DepositPending {
		return nil, ErrDepositAlreadyReviewed
	}

	// Lock the wallet row before crediting it.
	if _, err := s.wallets.GetForUpdate(ctx, tx, d.UserID); err != nil {
		return nil, err
	}
	if err := s.wallets.ApplyDelta(ctx, tx, d.UserID, d.Amount); err != nil {
		return nil, err
	}
	if err := s.deposits.Resolve(ctx, tx, d.ID, models.DepositApproved, adminID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidatePortfolio(ctx, d.UserID)

	d.Status = models.DepositApproved
	d.ReviewedBy = &adminID
	return d, nil
}

func (s *DepositService) RejectDeposit(ctx context.Context, depositID, adminID string) (*models.Deposit, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	d, err := s.deposits.GetByIDForUpdate(ctx, tx, depositID)
	if err != nil {
		return nil, err
	}
	if d.Status != models.DepositPending {
		return nil, ErrDepositAlreadyReviewed
	}

	if err := s.deposits.Resolve(ctx, tx, d.ID, models.DepositRejected, adminID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	d.Status = models.DepositRejected
	d.ReviewedBy = &adminID
	return d, nil
}
