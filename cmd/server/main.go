package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/zarascrunch/storefront/internal/cart"
	"github.com/zarascrunch/storefront/internal/config"
	"github.com/zarascrunch/storefront/internal/es"
	"github.com/zarascrunch/storefront/internal/events"
	"github.com/zarascrunch/storefront/internal/handlers"
	"github.com/zarascrunch/storefront/internal/logging"
	auth "github.com/zarascrunch/storefront/internal/middleware/auth"
	httpserver "github.com/zarascrunch/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(configuration.KAFKA_ADDRESS)
	}

	var searchHandler *handlers.SearchHandler
	esClient, err := es.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
	} else {
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: es.ProductIndex}
	}

	cartStore := cart.NewGormStore(db)

	tokenService := &auth.TokenService{
		DB:            db,
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
		AdminEmails:   configuration.AdminEmails(),
	}
	if len(tokenService.AdminEmails) == 0 {
		logger.Warn("ADMIN_EMAILS is empty, every admin operation will be denied")
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:              db,
		AuthHandler:     &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
		ProductHandler:  &handlers.ProductHandler{DB: db, Producer: producer, ES: esClient},
		CartHandler:     &handlers.CartHandler{DB: db, Store: cartStore},
		CheckoutHandler: &handlers.CheckoutHandler{DB: db, Store: cartStore, Producer: producer},
		OrderHandler:    &handlers.AdminOrderHandler{DB: db, Producer: producer},
		ProjectHandler:  &handlers.ProjectHandler{DB: db},
		CommentHandler:  &handlers.CommentHandler{DB: db},
		ReviewHandler:   &handlers.ReviewHandler{DB: db},
		SearchHandler:   searchHandler,
		TokenService:    tokenService,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
