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

	"github.com/avolkov/webshop/internal/checkout"
	"github.com/avolkov/webshop/internal/config"
	"github.com/avolkov/webshop/internal/es"
	"github.com/avolkov/webshop/internal/handlers"
	"github.com/avolkov/webshop/internal/logging"
	"github.com/avolkov/webshop/internal/metrics"
	"github.com/avolkov/webshop/internal/mykafka"
	"github.com/avolkov/webshop/internal/session"
	httpserver "github.com/avolkov/webshop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"basket_events", "order_events", "product_events"}
		producer, err = mykafka.NewProducer(brokers, topics)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events disabled")
	}

	var searchHandler *handlers.SearchHandler
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler = &handlers.SearchHandler{ES: client, Index: "product"}
	} else {
		logger.Warn("ES_URL not set, search disabled")
		searchHandler = &handlers.SearchHandler{}
	}

	store := session.NewStore(db)
	serverMetrics := metrics.NewServerMetrics("shop")

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(serverMetrics.Middleware())

	deps := httpserver.Deps{
		DB:             db,
		Store:          store,
		SessionSecret:  []byte(configuration.SESSION_SECRET),
		ProductHandler: &handlers.ProductHandler{DB: db, Producer: producer},
		BasketHandler: &handlers.BasketHandler{
			DB:       db,
			Store:    store,
			Checkout: &checkout.Service{DB: db, Store: store},
			Producer: producer,
		},
		StatsHandler:  &handlers.StatsHandler{Store: store},
		SearchHandler: searchHandler,
		Metrics:       serverMetrics,
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
