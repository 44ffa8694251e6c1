package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

// AdminHandler serves the back office: trade approval, deposit review and
// user management. Every route behind it runs after RequireAdmin.
type AdminHandler struct {
	trades   *service.TradeService
	deposits *service.DepositService
	users    *service.UserAdminService
}

func NewAdminHandler(ts *service.TradeService, ds *service.DepositService, us *service.UserAdminService) *AdminHandler {
	return &AdminHandler{trades: ts, deposits: ds, users: us}
}

type reviewRequest struct {
	Note *string `json:"note"`
}

func (h *AdminHandler) ListTrades(c *gin.Context) {
	status := models.TradeStatus(c.DefaultQuery("status", string(models.TradePending)))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	trades, err := h.trades.ListByStatus(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trades"})
		return
	}

	c.JSON(http.StatusOK, trades)
}

func (h *AdminHandler) ApproveTrade(c *gin.Context) {
	admin, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reviewRequest
	_ = c.ShouldBindJSON(&req) // note is optional, body may be empty

	trade, err := h.trades.ApproveTrade(c.Request.Context(), c.Param("id"), admin.ID.String(), req.Note)
	if err != nil {
		h.writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *AdminHandler) RejectTrade(c *gin.Context) {
	admin, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reviewRequest
	_ = c.ShouldBindJSON(&req)

	trade, err := h.trades.RejectTrade(c.Request.Context(), c.Param("id"), admin.ID.String(), req.Note)
	if err != nil {
		h.writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *AdminHandler) ListDeposits(c *gin.Context) {
	status := models.DepositStatus(c.DefaultQuery("status", string(models.DepositPending)))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	deposits, err := h.deposits.ListByStatus(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposits"})
		return
	}

	c.JSON(http.StatusOK, deposits)
}

func (h *AdminHandler) ApproveDeposit(c *gin.Context) {
	admin, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deposit, err := h.deposits.ApproveDeposit(c.Request.Context(), c.Param("id"), admin.ID.String())
	if err != nil {
		h.writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, deposit)
}

func (h *AdminHandler) RejectDeposit(c *gin.Context) {
	admin, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deposit, err := h.deposits.RejectDeposit(c.Request.Context(), c.Param("id"), admin.ID.String())
	if err != nil {
		h.writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, deposit)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.users.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	err := h.users.SetUserStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, sql.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) writeReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrDepositAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrQuoteUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review failed"})
	}
}
