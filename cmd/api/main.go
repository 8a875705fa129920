package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/asistencia-escolar/asistencia-api/api/swagger"
	"github.com/asistencia-escolar/asistencia-api/internal/handler"
	"github.com/asistencia-escolar/asistencia-api/internal/repository"
	"github.com/asistencia-escolar/asistencia-api/internal/service"
	"github.com/asistencia-escolar/asistencia-api/pkg/cache"
	"github.com/asistencia-escolar/asistencia-api/pkg/config"
	"github.com/asistencia-escolar/asistencia-api/pkg/database"
	appLogger "github.com/asistencia-escolar/asistencia-api/pkg/logger"
	corsmiddleware "github.com/asistencia-escolar/asistencia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/asistencia-escolar/asistencia-api/pkg/middleware/requestid"
)

// @title Asistencia Escolar API
// @version 1.0.0
// @description Attendance tracking backend for preceptores
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := appLogger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("postgres connection failed", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The API works without Redis, just slower.
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	ackRepo := repository.NewAlertAckRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && redisClient != nil)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)
	validate := service.NewValidator()

	rosterSvc := service.NewRosterService(courseRepo, studentRepo, logr)
	sessionSvc := service.NewSessionService(sessionRepo, courseRepo, auditRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(recordRepo, sessionRepo, courseRepo, auditRepo, cacheSvc, validate, logr)
	statsSvc := service.NewStatsService(recordRepo, sessionRepo, courseRepo, studentRepo, cacheSvc, metricsSvc, logr)
	alertSvc := service.NewAlertService(recordRepo, studentRepo, courseRepo, ackRepo, auditRepo, validate, logr, cfg.Alerts.Enabled)
	exportSvc := service.NewExportService(statsSvc, logr, cfg.Reports.Enabled)
	auditSvc := service.NewAuditService(auditRepo, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(appLogger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handlers := handler.Handlers{
		Roster:     handler.NewRosterHandler(rosterSvc),
		Sessions:   handler.NewSessionHandler(sessionSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Stats:      handler.NewStatsHandler(statsSvc),
		Alerts:     handler.NewAlertHandler(alertSvc),
		Exports:    handler.NewExportHandler(exportSvc),
		Audit:      handler.NewAuditHandler(auditSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
	}
	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, tokenSvc, metricsSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
