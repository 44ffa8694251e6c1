package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

type TradeHandler struct {
	trades *service.TradeService
}

func NewTradeHandler(svc *service.TradeService) *TradeHandler {
	return &TradeHandler{trades: svc}
}

// Place submits a trade into the admin review queue.
func (h *TradeHandler) Place(c *gin.Context) {
	user, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.SubmitTradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	trade, err := h.trades.SubmitTrade(c.Request.Context(), user.ID.String(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSymbol),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidSide):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit trade"})
		}
		return
	}

	c.JSON(http.StatusCreated, trade)
}

// List returns the user's trade history, newest first.
func (h *TradeHandler) List(c *gin.Context) {
	user, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	trades, err := h.trades.ListTrades(c.Request.Context(), user.ID.String(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trades"})
		return
	}

	c.JSON(http.StatusOK, trades)
}
