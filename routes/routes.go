package routes

import (
	"net/http"
	"time"

	"shopspotlight/handlers"
	"shopspotlight/middleware"
	"shopspotlight/models"
	"shopspotlight/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and session endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/signup", hb.User.SignUp)
		api.POST("/signin", hb.User.SignIn)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/signout", hb.User.SignOut)
		api.GET("/me", hb.User.GetMe)
		api.PATCH("/me", hb.User.UpdateMe)
	}
}

// RegisterShopRoutes registers shop profile and catalog endpoints. All of
// them require the shop_owner role.
func RegisterShopRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shops")
	{
		// Public read by ID for shop detail pages.
		api.GET("/id/:id", hb.Shop.GetShop)

		owner := api.Group("")
		owner.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleShopOwner))
		owner.POST("", hb.Shop.CreateShop)
		owner.GET("/mine", hb.Shop.GetMyShop)
		owner.PATCH("/mine", hb.Shop.UpdateProfile)
		owner.PUT("/mine/status", hb.Shop.UpdateStatus)
		owner.PUT("/mine/location", hb.Shop.UpdateLocation)
		owner.POST("/mine/services", hb.Shop.AddService)
		owner.PUT("/mine/services/:serviceId", hb.Shop.UpdateService)
		owner.DELETE("/mine/services/:serviceId", hb.Shop.RemoveService)
	}
}

// RegisterDirectoryRoutes registers the customer-facing directory.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/directory")
	{
		api.GET("", hb.Directory.List)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Booking.ListBookings)
		api.POST("", middleware.RequireRole(models.RoleCustomer), hb.Booking.CreateBooking)
		api.PUT("/:id/status", middleware.RequireRole(models.RoleShopOwner), hb.Booking.UpdateBookingStatus)
	}
}

// RegisterFavoriteRoutes registers the saved-shops endpoints.
func RegisterFavoriteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/favorites")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleCustomer))
		api.GET("", hb.Favorite.ListFavorites)
		api.POST("", hb.Favorite.AddFavorite)
		api.DELETE("/:shopId", hb.Favorite.RemoveFavorite)
	}
}

// RegisterWeatherRoutes registers the weather widget endpoint.
func RegisterWeatherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/weather")
	{
		api.GET("", hb.Weather.Current)
	}
}

// RegisterStorageRoutes registers the image upload endpoint.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/:bucket", hb.Storage.Upload)
	}
}

// RegisterEventRoutes registers the change-notification stream.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("/:collection", hb.Events.Stream)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm ShopSpotlight",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterShopRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterFavoriteRoutes(r, hb)
	RegisterWeatherRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterHealthRoute(r)
}
