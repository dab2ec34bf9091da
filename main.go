package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"bookiteasy/config"
	"bookiteasy/cron"
	"bookiteasy/database"
	bookingRepo "bookiteasy/database/repository/booking"
	businessRepo "bookiteasy/database/repository/business"
	employeeRepo "bookiteasy/database/repository/employee"
	offeringRepo "bookiteasy/database/repository/offering"
	reviewRepo "bookiteasy/database/repository/review"
	userRepo "bookiteasy/database/repository/user"
	workingHoursRepo "bookiteasy/database/repository/workinghours"
	"bookiteasy/handlers"
	"bookiteasy/middleware"
	"bookiteasy/routes"
	"bookiteasy/services/booking"
	"bookiteasy/services/business"
	"bookiteasy/services/storage"
	"bookiteasy/services/user"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()

	var redisClients []*redis.Client
	if err := utils.InitRedis(); err != nil {
		logger.Warn("main: Redis unavailable, rate limiting falls back to memory", zap.Error(err))
	} else {
		redisClients = append(redisClients, utils.GetRateLimitClient())
	}

	var images storage.ImageStore = storage.DisabledImageStore{}
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: image uploads disabled", zap.Error(err))
	} else {
		images = storage.NewCloudinaryImageStore(cld, config.AppConfig.CloudinaryFolder, logger)
	}

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	businesses := businessRepo.NewMongoBusinessRepo()
	employees := employeeRepo.NewMongoEmployeeRepo()
	offerings := offeringRepo.NewMongoServiceRepo()
	reviews := reviewRepo.NewMongoReviewRepo()
	users := userRepo.NewMongoUserRepo()
	hours := workingHoursRepo.NewMongoWorkingHoursRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Bookings:             bookings,
		Services:             offerings,
		Employees:            employees,
		Businesses:           businesses,
		WorkingHours:         hours,
		Logger:               logger.Named("booking"),
		WeekdayZone:          weekdayZone(config.AppConfig.SlotWeekdayZone),
		RespectEmployeeHours: config.AppConfig.RespectEmployeeHours,
	}
	businessService := &business.DefaultBusinessService{
		Businesses:     businesses,
		Employees:      employees,
		Services:       offerings,
		WorkingHours:   hours,
		Reviews:        reviews,
		Bookings:       bookings,
		Users:          users,
		Images:         images,
		Logger:         logger.Named("business"),
		MaxUploadBytes: config.AppConfig.MaxUploadBytes,
	}
	userService := &user.DefaultUserService{
		Repo:           users,
		Businesses:     businesses,
		Reviews:        reviews,
		Images:         images,
		Logger:         logger.Named("user"),
		MaxUploadBytes: config.AppConfig.MaxUploadBytes,
	}

	handlerBundle := &handlers.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService),
		Business: handlers.NewBusinessHandler(businessService),
		User:     handlers.NewUserHandler(userService),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(rateLimiter(logger))

	routes.RegisterRoutes(router, handlerBundle)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(ctx, redisClients, database.MongoClient)

	var sweep *cron.SweepWorker
	if config.AppConfig.SweepEnabled {
		sweep = cron.NewSweepWorker(bookingService, config.AppConfig.SweepSpec, logger.Named("sweep"))
		if err := sweep.Start(); err != nil {
			logger.Error("main: booking completion sweep not running", zap.Error(err))
			sweep = nil
		}
	}

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
	stop()

	if sweep != nil {
		sweep.Shutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func weekdayZone(raw string) booking.WeekdayZone {
	if booking.WeekdayZone(raw) == booking.ZoneBusiness {
		return booking.ZoneBusiness
	}
	return booking.ZoneUTC
}

// rateLimiter uses Redis when configured and reachable, and always keeps an
// in-memory limiter for when Redis errors.
func rateLimiter(logger *zap.Logger) gin.HandlerFunc {
	perMinute := config.AppConfig.MaxRequestsPerMin
	memory := middleware.NewMemoryLimiter(perMinute)
	if config.AppConfig.RateLimitBackend == "redis" && utils.GetRateLimitClient() != nil {
		logger.Info("main: using Redis rate limiter", zap.Int("perMinute", perMinute))
		return middleware.RateLimitMiddleware(middleware.NewRedisLimiter(utils.GetRateLimitClient(), perMinute), memory)
	}
	return middleware.RateLimitMiddleware(memory, nil)
}
