package routes

import (
	"log/slog"

	"travel-booking/config"
	"travel-booking/controllers"
	"travel-booking/libs"
	"travel-booking/middleware"
	"travel-booking/repositories"
	"travel-booking/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// App is the wired HTTP engine plus the services background workers need.
type App struct {
	Router       *gin.Engine
	Transactions *services.TransactionService
}

type Stores struct {
	Users        services.UserStore
	Catalog      services.CatalogStores
	Carts        services.CartStore
	Transactions services.TransactionStore
}

func PostgresStores(db repositories.DB) Stores {
	return Stores{
		Users: repositories.NewUserRepository(db),
		Catalog: services.CatalogStores{
			Activities:     repositories.NewActivityRepository(db),
			Categories:     repositories.NewCategoryRepository(db),
			Promos:         repositories.NewPromoRepository(db),
			Banners:        repositories.NewBannerRepository(db),
			PaymentMethods: repositories.NewPaymentMethodRepository(db),
		},
		Carts:        repositories.NewCartRepository(db),
		Transactions: repositories.NewTransactionRepository(db),
	}
}

// NewApp builds services and controllers over the given stores. rdb and
// mailer may be nil.
func NewApp(cfg *config.Config, stores Stores, rdb *redis.Client, storage libs.ImageStorage, mailer services.Mailer, logger *slog.Logger) *App {
	authSvc := services.NewAuthService(stores.Users, cfg.JWTSecret, cfg.JWTExpiry)
	userSvc := services.NewUserService(stores.Users)
	catalogSvc := services.NewCatalogService(stores.Catalog, libs.NewCache(rdb, cfg.CatalogCacheTTL))
	cartSvc := services.NewCartService(stores.Carts, stores.Catalog.Activities)
	txSvc := services.NewTransactionService(stores.Transactions, stores.Users, mailer, cfg.TransactionTTL)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware(middleware.AllowedOrigins(cfg.OriginURL, cfg.AppEnv == "production")))
	router.MaxMultipartMemory = cfg.MaxUploadSize

	SetupRoutes(router, Controllers{
		Auth:        controllers.NewAuthController(authSvc, userSvc),
		Catalog:     controllers.NewCatalogController(catalogSvc),
		Cart:        controllers.NewCartController(cartSvc),
		Transaction: controllers.NewTransactionController(txSvc),
		Upload:      controllers.NewUploadController(storage, cfg.MaxUploadSize),
	}, cfg.JWTSecret, cfg.UploadDir)

	return &App{Router: router, Transactions: txSvc}
}
