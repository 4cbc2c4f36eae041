package routes

import (
	"net/http"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/metrics"
	"food-ordering-api/middleware"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Deps carries what the routes need to build their services
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
	Log    logrus.FieldLogger
	Codes  services.CodeGenerator
	// HashCost defaults to bcrypt.DefaultCost
	HashCost int
	// Clock defaults to time.Now; reports bucket days relative to it
	Clock func() time.Time
}

func SetupRoutes(r *gin.Engine, d Deps) {
	if d.Codes == nil {
		d.Codes = services.RandomCodes()
	}
	if d.HashCost == 0 {
		d.HashCost = bcrypt.DefaultCost
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}

	authSvc := services.NewAuthService(d.DB, d.Tokens, d.Log).WithHashCost(d.HashCost)
	orderSvc := services.NewOrderService(d.DB, d.Codes, d.Log)
	restaurantSvc := services.NewRestaurantService(d.DB, d.Log)
	customerSvc := services.NewCustomerService(d.DB, d.Log)
	couponSvc := services.NewCouponService(d.DB)
	adminSvc := services.NewAdminService(d.DB, d.Log)
	reportSvc := services.NewReportService(d.DB).WithClock(d.Clock)

	authH := handlers.NewAuthHandler(authSvc)
	publicH := handlers.NewPublicHandler(restaurantSvc)
	customerH := handlers.NewCustomerHandler(orderSvc, customerSvc)
	restaurantH := handlers.NewRestaurantHandler(restaurantSvc, orderSvc, couponSvc, reportSvc)
	adminH := handlers.NewAdminHandler(adminSvc, orderSvc, couponSvc, reportSvc)

	authenticated := middleware.Authenticate(d.Tokens, repository.NewUserRepository(d.DB))

	// ── Operational ────────────────────────────────────────────────
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = config.Ping(c.Request.Context(), sqlDB)
		}
		if err != nil {
			middleware.Log(c).WithError(err).Error("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "up"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/login", authH.Login)
		public.POST("/register", authH.Register)
		public.POST("/restaurant/register", authH.RegisterRestaurant)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", publicH.ListRestaurants)
		public.GET("/restaurants/featured", publicH.Featured)
		public.GET("/restaurants/:id", publicH.GetRestaurant)
		public.GET("/menu-items/regular", publicH.RegularItems)

		// Order lifecycle description
		public.GET("/order-statuses", publicH.GetOrderStatuses)
	}

	// ── Any signed-in account ──────────────────────────────────────
	account := r.Group("/api")
	account.Use(authenticated)
	{
		account.GET("/me", authH.Me)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(authenticated, middleware.Require(auth.CapOrderFood))
	{
		customer.GET("/profile", authH.Me)
		customer.PUT("/profile", authH.UpdateProfile)

		customer.POST("/orders", customerH.PlaceOrder)
		customer.GET("/orders", customerH.GetMyOrders)
		customer.GET("/orders/:id", customerH.GetOrderDetail)
		customer.PATCH("/orders/:id/cancel", customerH.CancelOrder)
		customer.POST("/orders/:id/review", customerH.ReviewOrder)

		customer.GET("/favorites", customerH.GetFavorites)
		customer.POST("/favorites/:restaurant_id", customerH.AddFavorite)
		customer.DELETE("/favorites/:restaurant_id", customerH.RemoveFavorite)

		customer.GET("/rewards", customerH.GetRewards)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(authenticated, middleware.Require(auth.CapManageRestaurant),
		middleware.OwnerRestaurant(repository.NewRestaurantRepository(d.DB)))
	{
		// Profile
		restaurant.GET("/profile", restaurantH.GetProfile)
		restaurant.PUT("/profile", restaurantH.UpdateProfile)

		// Menu management
		restaurant.GET("/menu", restaurantH.GetMenu)
		restaurant.GET("/categories", restaurantH.GetMenu)
		restaurant.POST("/categories", restaurantH.CreateCategory)
		restaurant.POST("/menu-items", restaurantH.AddMenuItem)
		restaurant.PUT("/menu-items/:id", restaurantH.UpdateMenuItem)
		restaurant.DELETE("/menu-items/:id", restaurantH.DeleteMenuItem)
		restaurant.PATCH("/menu-items/:id/availability", restaurantH.SetAvailability)

		// Promotions
		restaurant.GET("/promotions", restaurantH.GetPromotions)
		restaurant.POST("/promotions", restaurantH.CreatePromotion)
		restaurant.PUT("/promotions/:id", restaurantH.UpdatePromotion)
		restaurant.DELETE("/promotions/:id", restaurantH.DeletePromotion)

		// Order management
		restaurant.GET("/orders", restaurantH.GetRestaurantOrders)
		restaurant.PATCH("/orders/:id/status", restaurantH.UpdateOrderStatus)

		// Reports
		restaurant.GET("/dashboard", restaurantH.GetDashboard)
		restaurant.GET("/analytics", restaurantH.GetAnalytics)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(authenticated, middleware.Require(auth.CapAdminister))
	{
		admin.GET("/restaurants", adminH.AdminGetAllRestaurants)
		admin.PATCH("/restaurants/:id/verify", adminH.VerifyRestaurant)
		admin.PATCH("/restaurants/:id/block", adminH.BlockRestaurant)
		admin.PATCH("/restaurants/:id/unblock", adminH.UnblockRestaurant)
		admin.DELETE("/restaurants/:id", adminH.DeleteRestaurant)

		admin.GET("/orders", adminH.AdminGetAllOrders)
		admin.POST("/orders/:id/refund", adminH.RefundOrder)

		admin.GET("/reviews", adminH.GetReviews)
		admin.DELETE("/reviews/:id", adminH.DeleteReview)

		admin.GET("/coupons", adminH.GetCoupons)
		admin.POST("/coupons", adminH.CreateCoupon)
		admin.PUT("/coupons/:id", adminH.UpdateCoupon)
		admin.DELETE("/coupons/:id", adminH.DeleteCoupon)

		admin.GET("/users", adminH.AdminGetAllUsers)
		admin.PATCH("/users/:id/block", adminH.BlockUser)
		admin.PATCH("/users/:id/unblock", adminH.UnblockUser)

		admin.GET("/dashboard", adminH.GetDashboard)
		admin.GET("/reports", adminH.GetReports)
	}
}
