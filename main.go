package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopspotlight/config"
	"shopspotlight/cron"
	"shopspotlight/database"
	bookingRepoPkg "shopspotlight/database/repository/booking"
	favoriteRepoPkg "shopspotlight/database/repository/favorite"
	shopRepoPkg "shopspotlight/database/repository/shop"
	userRepoPkg "shopspotlight/database/repository/user"
	"shopspotlight/handlers"
	"shopspotlight/realtime"
	"shopspotlight/routes"
	bookingService "shopspotlight/services/booking"
	"shopspotlight/services/directory"
	favoriteService "shopspotlight/services/favorite"
	"shopspotlight/services/geo"
	shopService "shopspotlight/services/shop"
	"shopspotlight/services/storage"
	userService "shopspotlight/services/user"
	"shopspotlight/services/weather"
	"shopspotlight/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// indexer is implemented by every Mongo repository.
type indexer interface {
	EnsureIndexes() error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitEventsClient()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetEventsClient()},
		database.MongoClient,
	)

	// Repositories.
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	favoriteRepo := favoriteRepoPkg.NewMongoFavoriteRepo()

	for _, repo := range []any{shopRepo, userRepo, bookingRepo, favoriteRepo} {
		if ix, ok := repo.(indexer); ok {
			if err := ix.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
			}
		}
	}

	// The change-notification hub fans writes out to every open directory and
	// booking list, across instances.
	hub := realtime.NewRedisHub(utils.GetEventsClient())

	snapshot, err := directory.NewSnapshot(context.Background(), shopRepo, hub)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build directory snapshot: %v", err)
	}
	defer snapshot.Close()

	cloudinaryStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	locator := geo.NewIPLocator()

	// Services.
	usrService := &userService.DefaultUserService{Repo: userRepo}
	shpService := &shopService.DefaultShopService{Repo: shopRepo, Hub: hub}
	bkgService := &bookingService.DefaultBookingService{
		Repo:     bookingRepo,
		ShopRepo: shopRepo,
		Hub:      hub,
	}
	favService := &favoriteService.DefaultFavoriteService{Repo: favoriteRepo, Hub: hub}
	weatherSvc := weather.NewOpenMeteoService()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  userRepo,
		User:      &handlers.UserHandler{Svc: usrService},
		Shop:      &handlers.ShopHandler{Svc: shpService},
		Directory: &handlers.DirectoryHandler{Snapshot: snapshot, Locator: locator},
		Booking:   &handlers.BookingHandler{Svc: bkgService},
		Favorite:  &handlers.FavoriteHandler{Svc: favService},
		Weather:   &handlers.WeatherHandler{Svc: weatherSvc, Locator: locator},
		Storage:   &handlers.StorageHandler{Svc: cloudinaryStorage},
		Events:    &handlers.EventsHandler{Hub: hub},
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	// Periodic resync covers change events missed during Redis outages.
	resync := cron.StartDirectoryResync(snapshot)
	defer resync.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
