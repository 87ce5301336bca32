package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"brewride/cmd"
	httpserver "brewride/internal/adapters/in/http"
	"brewride/internal/adapters/out/geo"
	"brewride/internal/adapters/out/kafka"
	"brewride/internal/adapters/out/postgres/archiverepo"
	"brewride/internal/adapters/out/postgres/orderrepo"
	"brewride/internal/adapters/out/postgres/riderrepo"
	"brewride/internal/adapters/out/redis"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/jobs"
	"brewride/internal/tracking"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := mustConnectDB(config)
	mustMigrate(db)

	cache, err := redis.NewPositionCache(config.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()

	publisher := kafka.NewOrderChangedPublisher([]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
	defer publisher.Close()

	planner := geo.NewOsrmRoutePlanner(config.OsrmBaseURL, nil)
	hub := tracking.NewHub()

	root, err := cmd.NewCompositionRoot(config, db, publisher, cache, planner, hub, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewOrderChangedConsumer(
		[]string{config.KafkaHost}, config.KafkaOrderChangedTopic, config.KafkaConsumerGroup, logger)
	defer consumer.Close()
	go func() {
		if err := consumer.Consume(ctx, func(_ context.Context, event order.ChangedEvent) {
			hub.PublishEvent(event)
		}); err != nil {
			logger.Error("Change notification consumer stopped", "error", err)
		}
	}()

	jobManager := jobs.NewJobManager(root.CreateOrderRepository(), hub, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &root, config, logger)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		AdminKey:               goDotEnvVariable("ADMIN_KEY"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup:     goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:              goDotEnvVariable("REDIS_ADDR"),
		OsrmBaseURL:            goDotEnvVariable("OSRM_BASE_URL"),
		CafeLat:                goDotEnvFloat("CAFE_LAT"),
		CafeLng:                goDotEnvFloat("CAFE_LNG"),
	}
}

func goDotEnvVariable(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Environment variable %s is not a number: %v", key, err)
	}
	return value
}

func mustConnectDB(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.DBHost, config.DBUser, config.DBPassword, config.DBName, config.DBPort, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&riderrepo.RiderDTO{},
		&riderrepo.StatsDTO{},
		&archiverepo.CompletedOrderDTO{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(ctx context.Context, root *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(root.CreateServerConfig(config.AdminKey))
	server.RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}
