package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/config"
	"github.com/barsan/reservation-api/internal/database"
	"github.com/barsan/reservation-api/internal/handler"
	"github.com/barsan/reservation-api/internal/middleware"
	"github.com/barsan/reservation-api/internal/queue"
	"github.com/barsan/reservation-api/internal/repository"
	"github.com/barsan/reservation-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable; rate limiting and response cache disabled")
	}
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	venueRepo := repository.NewVenueRepo(db)
	zoneRepo := repository.NewZoneRepo(db)
	tableRepo := repository.NewTableRepo(db)
	holdRepo := repository.NewHoldRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(venueRepo, zoneRepo, tableRepo)
	bookingHandler := handler.NewBookingHandler(cfg, venueRepo, zoneRepo, tableRepo, holdRepo, reservationRepo)
	accountHandler := handler.NewAccountHandler(reservationRepo)
	adminHandler := handler.NewAdminHandler(venueRepo, tableRepo, reservationRepo)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, bookingHandler, rateMW, cacheMW)
	router.RegisterAccount(e, accountHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background audit-log consumer for confirmed reservations.
	go func() {
		if err := queue.StartConfirmedConsumer(); err != nil {
			log.Printf("reservation-consumer: stopped: %v", err)
		}
	}()

	// Hygiene sweep for expired holds and dead refresh tokens.
	// Correctness never depends on this; reads expire both lazily.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := holdRepo.DeleteExpired(ctx); err != nil {
				log.Printf("sweeper: holds: %v", err)
			} else if n > 0 {
				log.Printf("sweeper: removed %d expired holds", n)
			}
			if n, err := tokenRepo.PurgeExpired(ctx); err != nil {
				log.Printf("sweeper: tokens: %v", err)
			} else if n > 0 {
				log.Printf("sweeper: purged %d dead refresh tokens", n)
			}
			cancel()
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
