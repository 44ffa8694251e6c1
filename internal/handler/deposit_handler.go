package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

type DepositHandler struct {
	deposits *service.DepositService
}

func NewDepositHandler(svc *service.DepositService) *DepositHandler {
	return &DepositHandler{deposits: svc}
}

// Create files a funding request. The wallet is credited only when an
// admin approves it.
func (h *DepositHandler) Create(c *gin.Context) {
	user, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.RequestDepositReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	deposit, err := h.deposits.RequestDeposit(c.Request.Context(), user.ID.String(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deposit"})
		return
	}

	c.JSON(http.StatusCreated, deposit)
}

func (h *DepositHandler) List(c *gin.Context) {
	user, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	deposits, err := h.deposits.ListDeposits(c.Request.Context(), user.ID.String(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposits"})
		return
	}

	c.JSON(http.StatusOK, deposits)
}
