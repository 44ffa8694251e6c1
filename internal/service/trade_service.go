package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/portfolio"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/repo"
)

var (
	ErrUnknownSymbol     = errors.New("symbol is not tradable")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidSide       = errors.New("side must be buy or sell")
	ErrAlreadyReviewed   = errors.New("trade has already been reviewed")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrQuoteUnavailable  = errors.New("no quote available for symbol")
)

type SubmitTradeReq struct {
	Symbol   string           `json:"symbol" binding:"required"`
	Side     models.TradeSide `json:"side" binding:"required"`
	Quantity float64          `json:"quantity" binding:"required"`
}

// TradeService owns the submit/approve/reject flow. Customer trades sit in
// a pending queue until an admin resolves them; approval executes at the
// simulator's current price inside one serializable transaction.
type TradeService struct {
	db        *sql.DB
	trades    *repo.TradeRepo
	positions *repo.PositionRepo
	wallets   *repo.WalletRepo
	prices    portfolio.PriceLookup
	cache     *CacheService
}

func NewTradeService(db *sql.DB, tr *repo.TradeRepo, pr *repo.PositionRepo, wr *repo.WalletRepo, prices portfolio.PriceLookup, cache *CacheService) *TradeService {
	return &TradeService{db: db, trades: tr, positions: pr, wallets: wr, prices: prices, cache: cache}
}

func (s *TradeService) SubmitTrade(ctx context.Context, userID string, req SubmitTradeReq) (*models.Trade, error) {
	if req.Side != models.Buy && req.Side != models.Sell {
		return nil, ErrInvalidSide
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, ok := s.prices.GetPrice(req.Symbol); !ok {
		return nil, ErrUnknownSymbol
	}

	t := &models.Trade{
		UserID:   userID,
		Symbol:   req.Symbol,
		Side:     req.Side,
		Quantity: req.Quantity,
		Status:   models.TradePending,
	}
	if err := s.trades.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TradeService) ListTrades(ctx context.Context, userID string, limit int) ([]models.Trade, error) {
	return s.trades.GetByUserID(ctx, userID, limit)
}

func (s *TradeService) ListByStatus(ctx context.Context, status models.TradeStatus, limit int) ([]models.Trade, error) {
	return s.trades.ListByStatus(ctx, status, limit)
}

// ApproveTrade executes a pending trade at the current simulated price:
// the wallet is debited (buy) or credited with proceeds (sell) and the
// user's holding on that side is opened or extended with a
// weighted-average entry price.
func (s *TradeService) ApproveTrade(ctx context.Context, tradeID, adminID string, note *string) (*models.Trade, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.trades.GetByIDForUpdate(ctx, tx, tradeID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TradePending {
		return nil, ErrAlreadyReviewed
	}

	quote, ok := s.prices.GetPrice(t.Symbol)
	if !ok {
		return nil, ErrQuoteUnavailable
	}
	execPrice := quote.Price

	// Wallet movement uses decimals; the notional is rounded to cents.
	notional := decimal.NewFromFloat(execPrice).
		Mul(decimal.NewFromFloat(t.Quantity)).
		Round(2)

	wallet, err := s.wallets.GetForUpdate(ctx, tx, t.UserID)
	if err != nil {
		return nil, err
	}

	if t.Side == models.Buy {
		if wallet.Balance.LessThan(notional) {
			return nil, ErrInsufficientFunds
		}
		if err := s.wallets.ApplyDelta(ctx, tx, t.UserID, notional.Neg()); err != nil {
			return nil, err
		}
	} else {
		if err := s.wallets.ApplyDelta(ctx, tx, t.UserID, notional); err != nil {
			return nil, err
		}
	}

	if err := s.applyToPosition(ctx, tx, t, execPrice); err != nil {
		return nil, err
	}

	if err := s.trades.Resolve(ctx, tx, t.ID, models.TradeApproved, &execPrice, adminID, note); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Cache staleness is bounded by the TTL; not worth failing the
	// approval over.
	_ = s.cache.InvalidatePortfolio(ctx, t.UserID)

	now := time.Now()
	t.Status = models.TradeApproved
	t.Price = &execPrice
	t.ReviewedBy = &adminID
	t.AdminNote = note
	t.ReviewedAt = &now
	return t, nil
}

func (s *TradeService) RejectTrade(ctx context.Context, tradeID, adminID string, note *string) (*models.Trade, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.trades.GetByIDForUpdate(ctx, tx, tradeID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TradePending {
		return nil, ErrAlreadyReviewed
	}

	if err := s.trades.Resolve(ctx, tx, t.ID, models.TradeRejected, nil, adminID, note); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	t.Status = models.TradeRejected
	t.ReviewedBy = &adminID
	t.AdminNote = note
	return t, nil
}

// applyToPosition opens a new lot or folds the fill into the existing
// same-side holding at a quantity-weighted entry price.
func (s *TradeService) applyToPosition(ctx context.Context, tx *sql.Tx, t *models.Trade, execPrice float64) error {
	existing, err := s.positions.GetForUpdate(ctx, tx, t.UserID, t.Symbol, t.Side)
	if err != nil {
		return err
	}

	if existing == nil {
		p := &models.Position{
			UserID:     t.UserID,
			Symbol:     t.Symbol,
			Side:       t.Side,
			Quantity:   t.Quantity,
			EntryPrice: execPrice,
		}
		return s.positions.Insert(ctx, tx, p)
	}

	newQuantity := existing.Quantity + t.Quantity
	newEntry := (existing.EntryPrice*existing.Quantity + execPrice*t.Quantity) / newQuantity
	return s.positions.UpdateLot(ctx, tx, existing.ID, newQuantity, newEntry)
}
