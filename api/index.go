package api

import (
	"log/slog"
	"net/http"
	"sync"

	"travel-booking/config"
	"travel-booking/libs"
	"travel-booking/routes"
	"travel-booking/services"
	"travel-booking/utils"

	"github.com/gin-gonic/gin"
)

var (
	app  *routes.App
	once sync.Once
)

// initApp wires the application once per serverless instance. Background
// workers (expiry sweeper, payment consumer) run only in the long-lived
// server started from main.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		cfg := config.AppConfig

		logger := utils.NewLogger("travel-booking", cfg.AppEnv, cfg.LogLevel)
		slog.SetDefault(logger)

		if err := config.ConnectDB(); err != nil {
			slog.Error("Failed to connect to database", "error", err)
		}
		config.ConnectRedis()

		storage := libs.NewImageStorage(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret, cfg.UploadDir, cfg.PublicBaseURL)

		var mailer services.Mailer
		if emailSvc, err := libs.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom); err == nil {
			mailer = emailSvc
		}

		app = routes.NewApp(cfg, routes.PostgresStores(config.DB), config.RedisClient, storage, mailer, logger)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	app.Router.ServeHTTP(w, r)
}
