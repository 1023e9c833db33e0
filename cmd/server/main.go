package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/checkin"
	"github.com/iliyamo/event-ticket-inventory/internal/config"
	"github.com/iliyamo/event-ticket-inventory/internal/database"
	"github.com/iliyamo/event-ticket-inventory/internal/handler"
	"github.com/iliyamo/event-ticket-inventory/internal/middleware"
	"github.com/iliyamo/event-ticket-inventory/internal/queue"
	"github.com/iliyamo/event-ticket-inventory/internal/repository"
	"github.com/iliyamo/event-ticket-inventory/internal/router"
	"github.com/iliyamo/event-ticket-inventory/internal/sales"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ticketRepo := repository.NewTicketRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	cache := store.NewCache(store.RepoLoader{Tickets: ticketRepo, Menu: menuRepo}, cfg.SnapshotTTL)

	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.SessionTTLMin, cfg.AdminSecretHash, cfg.MenuSecretHash)
	invHandler := handler.NewInventoryHandler(cache)
	salesHandler := handler.NewSalesHandler(cache, ticketRepo, sales.New())
	visitorHandler := handler.NewVisitorHandler(cache, ticketRepo, checkin.New())
	menuHandler := handler.NewMenuHandler(cache, ticketRepo, menuRepo, cfg.MenuSecretHash)
	adminHandler := handler.NewAdminHandler(cache, ticketRepo, cfg.AdminSecretHash)

	// Redis is optional: without it the response cache and rate limiter
	// become pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	respCache := middleware.NewResponseCache(config.LoadResponseCacheConfig(), rdb)
	rateLimit := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e, authHandler)
	router.RegisterAPI(e, cfg.JWTSecret, invHandler, salesHandler, visitorHandler, menuHandler, adminHandler,
		rateLimit, respCache)

	// Background consumer writing the activity log from broker events.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
