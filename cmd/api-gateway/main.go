package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lms-ledger-api/api/swagger"
	"github.com/noah-isme/lms-ledger-api/internal/dto"
	"github.com/noah-isme/lms-ledger-api/internal/handler"
	"github.com/noah-isme/lms-ledger-api/internal/middleware"
	"github.com/noah-isme/lms-ledger-api/internal/models"
	"github.com/noah-isme/lms-ledger-api/internal/repository"
	"github.com/noah-isme/lms-ledger-api/internal/service"
	"github.com/noah-isme/lms-ledger-api/pkg/cache"
	"github.com/noah-isme/lms-ledger-api/pkg/config"
	"github.com/noah-isme/lms-ledger-api/pkg/database"
	"github.com/noah-isme/lms-ledger-api/pkg/jobs"
	"github.com/noah-isme/lms-ledger-api/pkg/logger"
	"github.com/noah-isme/lms-ledger-api/pkg/messaging"
	corsmiddleware "github.com/noah-isme/lms-ledger-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-ledger-api/pkg/middleware/requestid"
)

// @title LMS Enrollment Ledger API
// @version 1.0.0
// @description Enrollment, grade ledger and GPA service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	validate := dto.NewValidator(cfg.Grades.Strict)

	profiles := repository.NewStudentProfileRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	var events service.EventPublisher
	if cfg.Events.NATSURL != "" {
		publisher, err := messaging.NewPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix, logr)
		if err != nil {
			logr.Warn("ledger events disabled", zap.Error(err))
		} else {
			defer publisher.Close() //nolint:errcheck
			async := messaging.NewAsyncPublisher(publisher, jobs.QueueConfig{Workers: 2, MaxRetries: 3, Logger: logr})
			async.Start(context.Background())
			defer async.Close()
			events = async
		}
	}

	enrollments := service.NewEnrollmentService(profiles, enrollmentRepo, events, metrics, validate, logr)
	grades := service.NewGradeService(profiles, enrollmentRepo, events, metrics, validate, logr)
	gpa := service.NewGPAService(profiles, enrollmentRepo, metrics, logr)
	roster := service.NewRosterService(profiles, enrollmentRepo, metrics, logr)

	var enrollmentHandler *handler.EnrollmentHandler
	var exportService *service.ExportService
	if cfg.Roster.CacheEnabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		cacheRepo := repository.NewCacheRepository(redisClient, "ledger", logr)
		defer cacheRepo.Close() //nolint:errcheck
		cached := service.NewCachedRosterService(roster, service.NewCacheService(cacheRepo, metrics, cfg.Roster.CacheTTL, logr), cfg.Roster.CacheTTL)
		enrollmentHandler = handler.NewEnrollmentHandler(enrollments, grades, cached, cached)
		exportService = service.NewExportService(cached, nil, nil, logr)
	} else {
		enrollmentHandler = handler.NewEnrollmentHandler(enrollments, grades, roster, nil)
		exportService = service.NewExportService(roster, nil, nil, logr)
	}

	tokens := service.NewTokenService(service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, db)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), tokens, enrollmentHandler, handler.NewGPAHandler(gpa), handler.NewExportHandler(exportService))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "roster_cache", cfg.Roster.CacheEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func registerRoutes(api *gin.RouterGroup, tokens middleware.TokenVerifier, enrollments *handler.EnrollmentHandler, gpa *handler.GPAHandler, exports *handler.ExportHandler) {
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	admin := middleware.RequireRoles(models.RoleAdmin)
	anyone := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor, models.RoleStudent)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))

	secured.POST("/enrollments", anyone, enrollments.Enroll)
	secured.DELETE("/enrollments", anyone, enrollments.Remove)
	secured.GET("/enrollments/me", anyone, enrollments.Mine)
	secured.GET("/enrollments/me/gpa", anyone, gpa.Mine)
	secured.PUT("/enrollments/grade", staff, enrollments.UpdateGrade)
	secured.GET("/enrollments", admin, enrollments.All)
	secured.GET("/courses/:courseId/enrollments", staff, enrollments.ByCourse)
	secured.GET("/courses/:courseId/enrollments/export", staff, exports.CourseRoster)
	secured.GET("/students/:userId/gpa", admin, gpa.ForStudent)
}
