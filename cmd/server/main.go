package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bebidashop/config"
	"bebidashop/internal/api"
	"bebidashop/internal/broker"
	"bebidashop/internal/catalog"
	"bebidashop/internal/models"
	"bebidashop/internal/redisclient"
	"bebidashop/internal/service"
	"bebidashop/internal/store"
	"bebidashop/internal/util"
	"bebidashop/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting bebidashop")

	tp, err := util.InitTracer("bebidashop", cfg.Observ.JaegerEndpoint, cfg.Observ.TraceSampleRatio)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	source, closeSource, err := newCatalogSource(cfg.Catalog, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to set up catalog source: %v", err)
	}
	defer closeSource()
	logger.Info("Catalog source configured", zap.String("source", source.Name()))

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	var publisher service.EventPublisher = service.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicCart)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	defaults := models.ShopSettings{
		CurrencySymbol: cfg.Shop.CurrencySymbol,
		WhatsAppNumber: cfg.Shop.WhatsAppNumber,
	}
	catalogService := service.NewCatalogService(source, catalog.DefaultProducts(), defaults)
	notifications := service.NewNotificationCenter(redisClient, cfg.Shop.CartKeyPrefix, cfg.Shop.NotificationTTL)
	cartService := service.NewCartService(catalogService, redisClient, notifications, publisher, service.CartOptions{
		KeyPrefix: cfg.Shop.CartKeyPrefix,
		LockTTL:   cfg.Shop.CartLockTTL,
	})
	cartService.OnCartChanged(service.NewCartCounter(redisClient, cfg.Shop.CartKeyPrefix))
	handoffService := service.NewHandoffService(catalogService, cartService, publisher)

	// The server still starts without a catalog; requests get the error panel until a refresh succeeds.
	if err := catalogService.Load(context.Background()); err != nil {
		logger.Error("Initial catalog load failed", zap.Error(err))
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var catalogWorker *worker.CatalogWorker
	if cfg.Kafka.Enabled {
		catalogConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicCatalog, cfg.Kafka.ConsumerGroup)
		catalogWorker = worker.NewCatalogWorker(catalogConsumer, catalogService)
		go func() {
			if err := catalogWorker.Start(workerCtx); err != nil {
				log.Printf("Catalog worker error: %v", err)
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(catalogService, cartService, handoffService, notifications)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	var metricsSrv *http.Server
	if cfg.Observ.PrometheusPort != "" && cfg.Observ.PrometheusPort != cfg.Server.Port {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Observ.PrometheusPort),
			Handler: mux,
		}
		go func() {
			log.Printf("Starting metrics server on port %s", cfg.Observ.PrometheusPort)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	workerCancel()
	if catalogWorker != nil {
		catalogWorker.Stop()
	}

	log.Println("Server exited")
}

// newCatalogSource builds the configured offers source and its cleanup func
func newCatalogSource(cfg config.CatalogConfig, db config.DatabaseConfig) (catalog.Source, func(), error) {
	switch cfg.Source {
	case "", "file":
		return catalog.NewFileSource(cfg.Path), func() {}, nil
	case "http":
		if cfg.URL == "" {
			return nil, nil, fmt.Errorf("CATALOG_URL is required for the http catalog source")
		}
		return catalog.NewHTTPSource(cfg.URL, cfg.HTTPTimeout), func() {}, nil
	case "postgres":
		s, err := store.NewStore(db.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Database connected")
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
