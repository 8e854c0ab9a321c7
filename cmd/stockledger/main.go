package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/ironvale/stockledger/docs"

	"github.com/ironvale/stockledger/internal/catalog"
	cataloghttp "github.com/ironvale/stockledger/internal/catalog/delivery/http"
	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/ledger"
	ledgerhttp "github.com/ironvale/stockledger/internal/ledger/delivery/http"
	ledgerdomain "github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/usecase/command"
	"github.com/ironvale/stockledger/internal/report"
	reporthttp "github.com/ironvale/stockledger/internal/report/delivery/http"
	"github.com/ironvale/stockledger/kafka"
	"github.com/ironvale/stockledger/pkg/database"
	"github.com/ironvale/stockledger/pkg/logger"
	"github.com/ironvale/stockledger/pkg/tracing"
)

func main() {
	// Load .env if present (container environments set real env vars)
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "stockledger-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting stock ledger service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "stockledgerdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&catalogdomain.Product{}, &ledgerdomain.Movement{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher (optional, service runs without a broker)
	var publisher *kafka.Publisher
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	if kafkaBrokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(kafkaBrokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, continuing without eventing")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Initialize contexts with Wire DI
	catalogRepo := catalog.ProvideProductRepository(db)

	catalogHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}

	ledgerComponents, err := ledger.InitializeComponents(db, catalogRepo, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize ledger components")
	}

	reportHandler, err := report.InitializeHTTPHandler(catalogRepo, ledgerComponents.Projector)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize report handler")
	}

	logger.Logger.Info().Msg("Handlers initialized")

	// Kafka consumer for sales events (optional)
	if kafkaBrokers != "" {
		startSalesConsumer(kafkaBrokers, catalogRepo, ledgerComponents, publisher)
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8085")
	startHTTPServer(ledgerComponents.Handler, catalogHandler, reportHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startSalesConsumer wires product.sold events into the movement ledger so
// sales from other services decrement stock without an HTTP round trip.
// Movements recorded here publish stock.movement.recorded like any other.
func startSalesConsumer(brokers string, catalogRepo catalogdomain.ProductRepository, components *ledger.Components, publisher *kafka.Publisher) {
	consumer, err := kafka.NewConsumer(
		strings.Split(brokers, ","),
		getEnv("KAFKA_GROUP_ID", "stockledger-service"),
		[]string{kafka.TopicProductSold},
	)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, sales events disabled")
		return
	}

	var events command.EventPublisher
	if publisher != nil {
		events = publisher
	}
	recordHandler := command.NewRecordMovementHandler(catalogRepo, components.Movements, components.Projector, events)

	consumer.RegisterHandler(kafka.EventTypeProductSold, func(ctx context.Context, event kafka.ProductSoldEvent) error {
		_, err := recordHandler.Handle(ctx, command.RecordMovementCommand{
			ProductID: event.ProductID,
			Direction: ledgerdomain.DirectionOut,
			Quantity:  event.Quantity,
			Reason:    ledgerdomain.ReasonSalesTransaction,
			Reference: event.SaleID,
		})
		if err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("product_id", event.ProductID).
				Str("sale_id", event.SaleID).
				Msg("Failed to record sale movement")
			return err
		}
		return nil
	})

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			logger.Logger.Error().Err(err).Msg("Kafka consumer stopped")
		}
	}()

	logger.Logger.Info().
		Str("topic", kafka.TopicProductSold).
		Msg("Sales event consumer started")
}

func startHTTPServer(
	ledgerHandler *ledgerhttp.LedgerHandler,
	catalogHandler *cataloghttp.CatalogHandler,
	reportHandler *reporthttp.ReportHandler,
	db *sql.DB,
	port string,
) {
	// Setup router
	router := mux.NewRouter()

	// Get middleware configuration
	middlewareConfig := ledgerhttp.DefaultMiddlewareConfig()

	// Register all middlewares using middleware registration system
	ledgerhttp.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	ledgerHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	reportHandler.RegisterRoutes(router)

	// Health check endpoint
	ledgerHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	ledgerhttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// CORS middleware
	corsHandler := ledgerhttp.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
