package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/bistro-boss/backend/internal/auth"
	"github.com/bistro-boss/backend/internal/billing"
	"github.com/bistro-boss/backend/internal/config"
	"github.com/bistro-boss/backend/internal/httpapi"
	"github.com/bistro-boss/backend/internal/services/carts"
	"github.com/bistro-boss/backend/internal/services/menusvc"
	"github.com/bistro-boss/backend/internal/services/payments"
	"github.com/bistro-boss/backend/internal/services/reviews"
	"github.com/bistro-boss/backend/internal/services/users"
	"github.com/bistro-boss/backend/internal/storage"
	"github.com/bistro-boss/backend/internal/storage/mongodb"
	"github.com/bistro-boss/backend/internal/storage/rediscache"
	"github.com/bistro-boss/backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewDefault("api")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("mongodb disconnect failed")
		}
	}()
	log.WithField("database", cfg.Mongo.Database).Info("connected to mongodb")

	store := mongodb.New(client.Database(cfg.Mongo.Database))

	var menuStore storage.MenuStore = store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		menuStore = rediscache.NewMenuStore(store, rdb, cfg.Redis.MenuTTL, log)
		log.WithField("addr", cfg.Redis.Addr).Info("menu cache enabled")
	}

	var intents billing.IntentCreator
	if cfg.Stripe.SecretKey != "" {
		intents = billing.NewStripeClient(cfg.Stripe.SecretKey)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	handler := httpapi.New(
		tokens,
		users.New(store, log),
		menusvc.New(menuStore, log),
		reviews.New(store),
		carts.New(store, log),
		payments.New(store, store, store, menuStore, intents, log),
		log,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
