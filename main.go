package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	"github.com/stockdash/stockdash/config"
	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/fmp"
	"github.com/stockdash/stockdash/internal/handlers"
	"github.com/stockdash/stockdash/internal/middleware"
	"github.com/stockdash/stockdash/internal/repository"
	"github.com/stockdash/stockdash/internal/services"
)

// @title Stockdash API
// @version 1.0
// @description Market dashboard backend: cached stocks and indices, live FMP pass-throughs, per-user watchlists and screeners.
// @BasePath /
func main() {
	// Load configuration
	cfg := config.Load()

	// Create context for initialization
	ctx := context.Background()

	// Initialize database handle. A missing DATABASE_URL degrades store-backed
	// reads to empty results instead of preventing startup.
	db := database.New(ctx, cfg.DatabaseURL)
	defer db.Close()

	// Initialize FMP client
	fmpClient := fmp.NewClientWithBaseURL(cfg.FMPKey, cfg.FMPBaseURL)

	// Initialize repositories
	stockRepo := repository.NewStockRepository(db)
	indexRepo := repository.NewIndexRepository(db)
	userRepo := repository.NewUserRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	ipoRepo := repository.NewIPORepository(db)
	screenerRepo := repository.NewScreenerRepository(db)

	// Initialize services
	marketSvc := services.NewMarketService(stockRepo, indexRepo, newsRepo, ipoRepo)
	screenerSvc := services.NewScreenerService(fmpClient, screenerRepo)
	watchlistSvc := services.NewWatchlistService(watchlistRepo)
	userSvc := services.NewUserService(userRepo, cfg.OwnerOpenID)
	refreshSvc := services.NewRefreshService(fmpClient, stockRepo, indexRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userSvc, cfg.CookieName, cfg.CookieTTL)
	stockHandler := handlers.NewStockHandler(marketSvc, fmpClient)
	indexHandler := handlers.NewIndexHandler(marketSvc)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistSvc)
	contentHandler := handlers.NewContentHandler(marketSvc)
	screenerHandler := handlers.NewScreenerHandler(screenerSvc)
	adminHandler := handlers.NewAdminHandler(refreshSvc)

	// Setup Gin router
	router := gin.Default()

	// Resolve the session identity on every request
	router.Use(middleware.Identify(userSvc, cfg.CookieName))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	api := router.Group("/api")

	// Auth routes
	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/session", authHandler.Session)
	api.POST("/auth/logout", authHandler.Logout)

	// Stock routes
	api.GET("/stocks/gainers", stockHandler.TopGainers)
	api.GET("/stocks/losers", stockHandler.TopLosers)
	api.GET("/stocks/search", stockHandler.Search)
	api.GET("/stocks/:symbol", stockHandler.GetBySymbol)
	api.GET("/stocks/:symbol/profile", stockHandler.Profile)
	api.GET("/stocks/:symbol/history", stockHandler.History)

	// Index routes
	api.GET("/indices", indexHandler.GetAll)
	api.GET("/indices/:symbol", indexHandler.GetBySymbol)

	// News and IPO routes
	api.GET("/news", contentHandler.LatestNews)
	api.GET("/ipos/upcoming", contentHandler.UpcomingIPOs)
	api.GET("/ipos/recent", contentHandler.RecentIPOs)

	// Ad-hoc screener (public, live movers)
	api.GET("/screener", screenerHandler.Run)

	// Authenticated routes
	authed := api.Group("", middleware.RequireAuth())
	authed.GET("/watchlist", watchlistHandler.List)
	authed.POST("/watchlist", watchlistHandler.Add)
	authed.DELETE("/watchlist/:stock_id", watchlistHandler.Remove)
	authed.GET("/screeners", screenerHandler.ListSaved)
	authed.POST("/screeners", screenerHandler.CreateSaved)
	authed.DELETE("/screeners/:id", screenerHandler.DeleteSaved)

	// Admin routes
	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.POST("/refresh", adminHandler.Refresh)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Println("Server exited")
}
