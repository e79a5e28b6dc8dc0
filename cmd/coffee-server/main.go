package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/auth"
	"github.com/tai160903/viet-coffee-server/internal/checkout"
	"github.com/tai160903/viet-coffee-server/internal/config"
	"github.com/tai160903/viet-coffee-server/internal/dashboard"
	"github.com/tai160903/viet-coffee-server/internal/db"
	coffeeHttp "github.com/tai160903/viet-coffee-server/internal/handler/http"
	"github.com/tai160903/viet-coffee-server/internal/order"
	"github.com/tai160903/viet-coffee-server/internal/product"
	"github.com/tai160903/viet-coffee-server/internal/transport"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Str("service", "coffee-server").Logger()

	log.Info().Msg("Starting coffee-server...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	dbPool, err := db.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()

	userRepo := auth.NewRepository(dbPool.Pool)
	tokenStore := auth.NewTokenStore(rdb)
	authSvc := auth.NewService(userRepo, tokenStore, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	broadcast := auth.NewUnauthenticatedBroadcast()

	productRepo := product.NewRepository(dbPool.Pool)
	productCache := product.NewListCache(rdb, productRepo)
	productSvc := product.NewService(productCache, productRepo)

	orderRepo := order.NewRepository(dbPool.Pool)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(orderSvc, checkout.Config{
		TaxRate:      cfg.Checkout.TaxRate,
		DiscountRate: cfg.Checkout.DiscountRate,
		Limits: checkout.Limits{
			MaxQuantity: cfg.Checkout.MaxQuantity,
			NoteLimit:   cfg.Checkout.NoteLimit,
		},
	})

	dashboardRepo := dashboard.NewRepository(dbPool.Pool)
	dashboardSvc := dashboard.NewService(dashboardRepo)

	if cfg.SeedDemo {
		seedDemo(context.Background(), productRepo, orderRepo)
		productCache.Invalidate(context.Background())
	}

	router := transport.NewRouter(transport.Handlers{
		Products:  coffeeHttp.NewProductHandler(productSvc),
		Auth:      coffeeHttp.NewAuthHandler(authSvc),
		Checkout:  coffeeHttp.NewCheckoutHandler(checkoutSvc, productSvc),
		Orders:    coffeeHttp.NewOrderHandler(orderSvc, cfg.Checkout.TaxRate),
		Dashboard: coffeeHttp.NewDashboardHandler(dashboardSvc),
	}, authSvc, broadcast)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Coffee-server stopped gracefully.")
}

// seedDemo loads the demo catalog and orders on an empty database; existing
// rows are left alone.
func seedDemo(ctx context.Context, products product.Repository, orders order.Repository) {
	existing, err := products.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check catalog before seeding")
		return
	}
	if len(existing) == 0 {
		for _, p := range product.DemoCatalog() {
			p := p
			if err := products.Create(ctx, &p); err != nil {
				log.Error().Err(err).Str("product_id", p.ID).Msg("Failed to seed demo product")
			}
		}
		log.Info().Msg("Seeded demo catalog")
	}

	existingOrders, err := orders.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check orders before seeding")
		return
	}
	if len(existingOrders) == 0 {
		for _, o := range order.DemoOrders() {
			o := o
			if err := orders.Create(ctx, &o); err != nil {
				log.Error().Err(err).Str("order_code", o.Code).Msg("Failed to seed demo order")
			}
		}
		log.Info().Msg("Seeded demo orders")
	}
}
