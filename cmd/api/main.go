package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/data"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/handler"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/market"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/middleware"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/repo"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/route"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

func main() {
	godotenv.Load()

	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Upgrade", "Connection"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "10000"
	}

	// Initialize PostgreSQL
	db, err := data.NewPostgres()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize Redis (optional, cache-off when unavailable)
	redis, err := data.NewRedis()
	if err != nil {
		log.Printf("Warning: Redis connection failed: %v. Proceeding without cache.", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	var cacheService *service.CacheService
	if redis != nil {
		cacheService = service.NewCacheService(redis.Client)
		log.Println("Cache service initialized with Redis")
	} else {
		log.Println("Cache service disabled (Redis unavailable)")
	}

	// Start the market price simulator
	tickInterval := market.DefaultTickInterval
	if v := os.Getenv("SIM_TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid SIM_TICK_INTERVAL %q: %v", v, err)
		}
		tickInterval = d
	}
	sim := market.NewSimulator(tickInterval)
	sim.Start()
	defer sim.Stop()
	log.Printf("Market simulator started (tick every %s)", tickInterval)

	// Initialize repositories
	positionRepo := repo.NewPositionRepo(db.DB)
	tradeRepo := repo.NewTradeRepo(db.DB)
	walletRepo := repo.NewWalletRepo(db.DB)
	depositRepo := repo.NewDepositRepo(db.DB)
	userRepo := repo.NewUserRepo(db.DB)

	// Initialize services
	portfolioService := service.NewPortfolioService(positionRepo, sim, cacheService)
	tradeService := service.NewTradeService(db.DB, tradeRepo, positionRepo, walletRepo, sim, cacheService)
	depositService := service.NewDepositService(db.DB, depositRepo, walletRepo, cacheService)
	userAdminService := service.NewUserAdminService(userRepo)

	// Initialize handlers
	handle := handler.NewHandler(sim, portfolioService, tradeService, depositService, userAdminService, cacheService)

	// Setup routes
	route.HealthRoutes(r) // public health check for ECS/Docker
	route.AuthRoutes(r, db)
	handle.RegisterPublicRoutes(r)

	r.Use(middleware.RequireAuth(db.DB))

	route.UserRoutes(r, db)
	handle.RegisterProtectedRoutes(r)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	handle.RegisterAdminRoutes(admin)

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
