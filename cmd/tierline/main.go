package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tierline-lab/tierline/internal/core/commission"
	corecfg "github.com/tierline-lab/tierline/internal/core/config"
	"github.com/tierline-lab/tierline/internal/core/storage/postgres"
	"github.com/tierline-lab/tierline/internal/ingestion"
	"github.com/tierline-lab/tierline/internal/migrations"
	"github.com/tierline-lab/tierline/internal/report"
	"github.com/tierline-lab/tierline/internal/server"
	"github.com/tierline-lab/tierline/internal/warmup"
)

func main() {
	configPath := flag.String("config", "tierline.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"commission_source", cfg.Commission.Source,
		"cache_backend", cfg.Cache.Backend,
		"total_policy", cfg.Resolved.Policy.Name(),
		"warm_interval", cfg.Report.WarmInterval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Commission configuration source
	var primary commission.Source
	switch cfg.Commission.Source {
	case "postgres":
		primary = commission.NewCachedSource(postgres.NewConfigAdapter(dbAdapter.DB()), cfg.Commission.CacheTTL)
	default:
		primary = cfg.Resolved.FileSource
	}
	source := commission.NewFallbackSource(primary, cfg.Resolved.DefaultRates)

	// 4. Result cache
	checks := map[string]server.HealthChecker{"database": dbAdapter}

	var cache report.Cache
	switch cfg.Cache.Backend {
	case "redis":
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		client, err := report.NewRedisClient(pingCtx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		pingCancel()
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		redisCache := report.NewRedisCache(client, cfg.Cache.Redis.Prefix, cfg.Cache.TTL)
		checks["cache"] = redisCache
		cache = redisCache
	case "memory":
		cache = report.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.Capacity)
	default:
		cache = report.NoopCache{}
	}

	// 5. Initialize Report (query API)
	reportSvc := report.NewService(source, dbAdapter, dbAdapter, cache, report.Options{
		Policy:         cfg.Resolved.Policy,
		Shards:         cfg.Report.Shards,
		MaxLimit:       cfg.Report.MaxLimit,
		ComputeTimeout: cfg.Report.ComputeTimeout,
	})

	// 6. Initialize Ingestion (referrals and player metrics)
	ingestionSvc := ingestion.NewService(dbAdapter, dbAdapter, cfg.Server.MaxBodySizeMB)

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, checks)
	ingestionSvc.RegisterRoutes(srv.Engine)
	reportSvc.RegisterRoutes(srv.Engine)

	// 8. Start Services
	if cfg.Cache.Backend != "none" {
		warmer := warmup.NewScheduler(cfg.Report.WarmInterval, cfg.Report.WarmTimeout, reportSvc)
		go func() {
			if err := warmer.Start(ctx); err != nil {
				slog.Error("Report warmer stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Report warmer disabled: caching is off")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
