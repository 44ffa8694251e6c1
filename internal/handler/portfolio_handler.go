package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

type PortfolioHandler struct {
	portfolio *service.PortfolioService
}

func NewPortfolioHandler(svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: svc}
}

// GetPortfolio returns the user's holdings valued at the latest simulated
// prices. Positions whose symbol has no quote come back without the
// current-market fields.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	user, err := GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	valued, err := h.portfolio.GetPortfolio(c.Request.Context(), user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": valued})
}
