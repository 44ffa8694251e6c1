package handler

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes wires the endpoints that work without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.Engine) {
	markets := r.Group("/markets")
	{
		markets.GET("", h.MarketHandler.GetMarkets)
		markets.GET("/:symbol", h.MarketHandler.GetMarket)
	}

	r.GET("/ws/quotes", h.QuoteHub.ServeWS)
}

// RegisterProtectedRoutes wires the customer endpoints; the caller mounts
// them behind RequireAuth.
func (h *Handler) RegisterProtectedRoutes(r *gin.Engine) {
	r.GET("/portfolio", h.PortfolioHandler.GetPortfolio)

	trades := r.Group("/trades")
	{
		trades.POST("", h.TradeHandler.Place)
		trades.GET("", h.TradeHandler.List)
	}

	deposits := r.Group("/deposits")
	{
		deposits.POST("", h.DepositHandler.Create)
		deposits.GET("", h.DepositHandler.List)
	}
}

// RegisterAdminRoutes wires the back office; the caller mounts them behind
// RequireAuth + RequireAdmin.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/trades", h.AdminHandler.ListTrades)
	rg.POST("/trades/:id/approve", h.AdminHandler.ApproveTrade)
	rg.POST("/trades/:id/reject", h.AdminHandler.RejectTrade)

	rg.GET("/deposits", h.AdminHandler.ListDeposits)
	rg.POST("/deposits/:id/approve", h.AdminHandler.ApproveDeposit)
	rg.POST("/deposits/:id/reject", h.AdminHandler.RejectDeposit)

	rg.GET("/users", h.AdminHandler.ListUsers)
	rg.POST("/users/:id/status", h.AdminHandler.SetUserStatus)
}
