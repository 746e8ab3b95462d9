package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-booking/config"
	_ "travel-booking/docs"
	"travel-booking/events"
	"travel-booking/libs"
	"travel-booking/routes"
	"travel-booking/services"
	"travel-booking/utils"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

// @title Travel Booking API
// @version 1.0
// @description Activities catalog, cart and transaction lifecycle.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger := utils.NewLogger("travel-booking", cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := config.ConnectDB(); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer config.CloseDB()

	config.ConnectRedis()
	defer config.CloseRedis()

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		slog.Error("Failed to create upload directory", "error", err)
		os.Exit(1)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}
	storage := libs.NewImageStorage(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret, cfg.UploadDir, baseURL)

	var mailer services.Mailer
	if emailSvc, err := libs.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom); err == nil {
		mailer = emailSvc
	} else {
		slog.Info("Invoice e-mails disabled", "reason", err)
	}

	app := routes.NewApp(cfg, routes.PostgresStores(config.DB), config.RedisClient, storage, mailer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Transactions.RunExpirySweeper(ctx, cfg.TransactionSweepInterval)

	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			slog.Error("Failed to connect to RabbitMQ, payment events disabled", "error", err)
		} else {
			defer conn.Close()
			if err := events.StartPaymentConsumer(ctx, conn, app.Transactions); err != nil {
				slog.Error("Failed to start payment consumer", "error", err)
			} else {
				slog.Info("Payment event consumer started", "exchange", events.EventsExchange)
			}
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "env", cfg.AppEnv)
		slog.Info("Swagger UI: http://localhost:" + cfg.Port + "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
