package routes

import (
	"net/http"

	"travel-booking/controllers"
	"travel-booking/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Catalog     *controllers.CatalogController
	Cart        *controllers.CartController
	Transaction *controllers.TransactionController
	Upload      *controllers.UploadController
}

func SetupRoutes(router *gin.Engine, ctrls Controllers, jwtSecret, uploadDir string) {
	authCtrl := ctrls.Auth
	catalogCtrl := ctrls.Catalog
	cartCtrl := ctrls.Cart
	txCtrl := ctrls.Transaction

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.Static("/uploads", uploadDir)

	v1 := router.Group("/api/v1")

	v1.POST("/register", authCtrl.Register)
	v1.POST("/login", authCtrl.Login)

	v1.GET("/activities", catalogCtrl.GetActivities)
	v1.GET("/activity/:id", catalogCtrl.GetActivity)
	v1.GET("/activities-by-category/:id", catalogCtrl.GetActivitiesByCategory)
	v1.GET("/categories", catalogCtrl.GetCategories)
	v1.GET("/category/:id", catalogCtrl.GetCategory)
	v1.GET("/promos", catalogCtrl.GetPromos)
	v1.GET("/promo/:id", catalogCtrl.GetPromo)
	v1.GET("/banners", catalogCtrl.GetBanners)
	v1.GET("/banner/:id", catalogCtrl.GetBanner)
	v1.GET("/payment-methods", catalogCtrl.GetPaymentMethods)

	auth := v1.Group("")
	auth.Use(middleware.AuthMiddleware(jwtSecret))
	{
		auth.GET("/logout", authCtrl.Logout)
		auth.GET("/user", authCtrl.GetUser)
		auth.POST("/update-profile", authCtrl.UpdateProfile)

		auth.POST("/add-cart", cartCtrl.AddCart)
		auth.GET("/carts", cartCtrl.GetCarts)
		auth.POST("/update-cart/:id", cartCtrl.UpdateCart)
		auth.DELETE("/delete-cart/:id", cartCtrl.DeleteCart)

		auth.POST("/create-transaction", txCtrl.CreateTransaction)
		auth.GET("/transaction/:id", txCtrl.GetTransaction)
		auth.GET("/my-transactions", txCtrl.GetMyTransactions)
		auth.POST("/update-transaction-proof-payment/:id", txCtrl.UpdateProofPayment)
		auth.POST("/upload-image", ctrls.Upload.UploadImage)
	}

	admin := v1.Group("")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.AdminMiddleware())
	{
		admin.GET("/all-user", authCtrl.GetAllUsers)
		admin.POST("/update-user-role/:id", authCtrl.UpdateUserRole)

		admin.POST("/create-activity", catalogCtrl.CreateActivity)
		admin.POST("/update-activity/:id", catalogCtrl.UpdateActivity)
		admin.DELETE("/delete-activity/:id", catalogCtrl.DeleteActivity)

		admin.POST("/create-category", catalogCtrl.CreateCategory)
		admin.POST("/update-category/:id", catalogCtrl.UpdateCategory)
		admin.DELETE("/delete-category/:id", catalogCtrl.DeleteCategory)

		admin.POST("/create-promo", catalogCtrl.CreatePromo)
		admin.POST("/update-promo/:id", catalogCtrl.UpdatePromo)
		admin.DELETE("/delete-promo/:id", catalogCtrl.DeletePromo)

		admin.POST("/create-banner", catalogCtrl.CreateBanner)
		admin.POST("/update-banner/:id", catalogCtrl.UpdateBanner)
		admin.DELETE("/delete-banner/:id", catalogCtrl.DeleteBanner)

		admin.GET("/all-transactions", txCtrl.GetAllTransactions)
		admin.POST("/update-transaction-status/:id", txCtrl.UpdateTransactionStatus)
		admin.DELETE("/delete-transaction/:id", txCtrl.DeleteTransaction)
	}
}
