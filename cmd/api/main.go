package main

import (
	"context"
	"time"

	"logistics-insight/internal/core/cache"
	"logistics-insight/internal/core/config"
	"logistics-insight/internal/core/logger"
	"logistics-insight/internal/core/server"
	"logistics-insight/internal/core/storage"

	analyticsadapters "logistics-insight/internal/features/analytics/adapters"
	analyticshandler "logistics-insight/internal/features/analytics/handler"
	analyticsports "logistics-insight/internal/features/analytics/ports"
	analyticsservice "logistics-insight/internal/features/analytics/service"

	ingesthandler "logistics-insight/internal/features/ingest/handler"
	ingestservice "logistics-insight/internal/features/ingest/service"

	shipmentadapters "logistics-insight/internal/features/shipments/adapters"
	shipmenthandler "logistics-insight/internal/features/shipments/handler"
	shipmentservice "logistics-insight/internal/features/shipments/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer db.Close()

	if err := storage.InitSchema(db); err != nil {
		log.Fatal("Failed to initialize database schema", zap.Error(err))
	}

	shipmentRepo := shipmentadapters.NewSqliteShipmentRepository(db)

	var snapshotRepo analyticsports.ReportSnapshotRepository
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			log.Warn("Failed to create Redis cache, snapshot caching disabled", zap.Error(err))
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisCache.Ping(ctx); err != nil {
				log.Warn("Redis unreachable, snapshot caching disabled", zap.Error(err))
			} else {
				defer redisCache.Close()
				ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
				snapshotRepo = analyticsadapters.NewRedisSnapshotRepository(redisCache, ttl)
				log.Info("Snapshot caching enabled", zap.Duration("ttl", ttl))
			}
			cancel()
		}
	}

	shipmentSvc := shipmentservice.NewShipmentService(shipmentRepo)
	importSvc := ingestservice.NewImportService(shipmentRepo)
	analyticsSvc := analyticsservice.NewAnalyticsService(shipmentRepo, snapshotRepo)

	shipmentHandler := shipmenthandler.NewShipmentHandler(shipmentSvc)
	uploadHandler := ingesthandler.NewUploadHandler(importSvc)
	analyzeHandler := analyticshandler.NewAnalyzeHandler(analyticsSvc)

	srv := server.New(cfg)

	srv.App.Post("/upload", uploadHandler.Upload)
	srv.App.Get("/shipments", shipmentHandler.ListShipments)
	srv.App.Delete("/shipments", shipmentHandler.Reset)
	srv.App.Get("/shipments/:id", shipmentHandler.GetShipment)
	srv.App.Get("/shipments/:id/events", shipmentHandler.ListEvents)
	srv.App.Get("/stats/daily", shipmentHandler.DailyStats)
	srv.App.Get("/analyze", analyzeHandler.Analyze)
	srv.App.Get("/analyze/latest", analyzeHandler.LatestReport)

	if err := srv.Run(); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
