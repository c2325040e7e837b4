package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/ministry-booking-api/api/swagger"
	"github.com/noah-isme/ministry-booking-api/internal/handler"
	"github.com/noah-isme/ministry-booking-api/internal/middleware"
	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/internal/repository"
	"github.com/noah-isme/ministry-booking-api/internal/service"
	"github.com/noah-isme/ministry-booking-api/pkg/cache"
	"github.com/noah-isme/ministry-booking-api/pkg/config"
	"github.com/noah-isme/ministry-booking-api/pkg/database"
	"github.com/noah-isme/ministry-booking-api/pkg/logger"
	"github.com/noah-isme/ministry-booking-api/pkg/mailer"
	corsmiddleware "github.com/noah-isme/ministry-booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ministry-booking-api/pkg/middleware/requestid"
)

// @title Ministry Appointment Booking API
// @version 1.0.0
// @description Citizen appointment booking portal with a staff review dashboard
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	// Redis is optional: the dashboard count cache degrades to direct reads
	// when it is unavailable.
	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	notifications := service.NewNotificationService(mailer.New(cfg.SMTP), metrics, logr, service.NotificationConfig{
		Workers:    cfg.Booking.NotifyWorkers,
		BufferSize: cfg.Booking.NotifyBuffer,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifications.Start(ctx)
	defer notifications.Stop()

	ministerRepo := repository.NewMinisterRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	ministerSvc := service.NewMinisterService(ministerRepo, nil, logr)
	slotSvc := service.NewSlotService(slotRepo, ministerRepo, nil, logr)
	availabilitySvc := service.NewAvailabilityService(slotRepo, logr, cfg.Booking.Timezone)
	bookingSvc := service.NewBookingService(slotRepo, appointmentRepo, notifications, cacheSvc, metrics, nil, logr)
	approvalSvc := service.NewApprovalService(appointmentRepo, notifications, cacheSvc, metrics, nil, logr)
	dashboardSvc := service.NewDashboardService(appointmentRepo, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	exportSvc := service.NewExportService(appointmentRepo, logr)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	bookingHandler := handler.NewBookingHandler(ministerSvc, availabilitySvc, bookingSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, approvalSvc, exportSvc)
	ministerHandler := handler.NewMinisterHandler(ministerSvc, slotSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Public citizen surface, no authentication.
	api.GET("/ministers", bookingHandler.ListMinisters)
	api.GET("/slots", bookingHandler.Slots)
	api.POST("/appointments", bookingHandler.CreateAppointment)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Staff surface behind JWT + role checks.
	staff := api.Group("")
	staff.Use(middleware.JWT(authSvc))
	staff.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))

	staff.POST("/auth/logout", authHandler.Logout)
	staff.POST("/auth/change-password", authHandler.ChangePassword)
	staff.GET("/auth/me", authHandler.Me)

	staff.GET("/dashboard/appointments", dashboardHandler.Appointments)
	staff.GET("/dashboard/appointments/export", dashboardHandler.Export)
	staff.POST("/dashboard/appointments/:id/decision",
		middleware.Audit(userRepo, models.AuditActionDecision, "appointment"),
		dashboardHandler.Decide)

	admin := staff.Group("")
	admin.GET("/admin/ministers", ministerHandler.List)
	admin.GET("/admin/ministers/:id", ministerHandler.Get)
	admin.GET("/admin/ministers/:id/slots", ministerHandler.ListSlots)

	// Roster and calendar mutations are restricted to superadmins.
	super := staff.Group("")
	super.Use(middleware.RequireRoles(models.RoleSuperAdmin))
	super.POST("/admin/ministers",
		middleware.Audit(userRepo, models.AuditActionMinisterAdmin, "minister"),
		ministerHandler.Create)
	super.PUT("/admin/ministers/:id",
		middleware.Audit(userRepo, models.AuditActionMinisterAdmin, "minister"),
		ministerHandler.Update)
	super.DELETE("/admin/ministers/:id",
		middleware.Audit(userRepo, models.AuditActionMinisterAdmin, "minister"),
		ministerHandler.Delete)
	super.POST("/admin/ministers/:id/slots",
		middleware.Audit(userRepo, models.AuditActionSlotAdmin, "slot"),
		ministerHandler.CreateSlot)
	super.POST("/admin/ministers/:id/slots/generate",
		middleware.Audit(userRepo, models.AuditActionSlotAdmin, "slot"),
		ministerHandler.GenerateSlots)
	super.DELETE("/admin/slots/:slotId",
		middleware.Audit(userRepo, models.AuditActionSlotAdmin, "slot"),
		ministerHandler.DeleteSlot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
