package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/api"
	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/billing"
	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/metrics"
	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/repository/postgres"
	redisrepo "github.com/Pushkar3232/SitePilot-sub001/internal/adapter/repository/redis"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/config"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/logger"
	"github.com/Pushkar3232/SitePilot-sub001/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.New()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database and Redis Connections ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisAddr)
	if err != nil {
		log.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("could not connect to redis, membership lookups will hit postgres directly", "error", err)
	}

	// --- Repositories ---
	tenantRepo := postgres.NewTenantRepository(db)
	websiteRepo := postgres.NewWebsiteRepository(db)
	pageRepo := postgres.NewPageRepository(db)
	componentRepo := postgres.NewComponentRepository(db)
	membershipRepo := redisrepo.NewMembershipCache(
		postgres.NewMembershipRepository(db), redisClient, log, cfg.MembershipCacheTTL)

	planService := billing.NewPlanService(db, log, cfg.PlanCacheSize, cfg.PlanCacheTTL)

	// --- Use Cases ---
	guard := usecase.NewTenantGuard(membershipRepo, usecase.NewAuthorizer(), log, m)
	websiteService := usecase.NewWebsiteService(guard, websiteRepo, tenantRepo, planService, log, m)
	pageService := usecase.NewPageService(guard, pageRepo, websiteRepo, planService, log, m)
	componentService := usecase.NewComponentService(guard, componentRepo, pageRepo, planService, log, m)
	memberService := usecase.NewMemberService(guard, membershipRepo, tenantRepo, planService, log, m)

	// --- Servers ---
	apiServer := &http.Server{
		Addr:    cfg.APIServerAddr,
		Handler: api.NewRouter(cfg, log, websiteService, pageService, componentService, memberService),
	}

	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("POST /internal/plans/invalidate", func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := uuid.Parse(r.URL.Query().Get("tenant_id"))
		if err != nil {
			http.Error(w, "Invalid tenant_id", http.StatusBadRequest)
			return
		}
		planService.Invalidate(tenantID)
		w.WriteHeader(http.StatusNoContent)
	})
	adminServer := &http.Server{
		Addr:    cfg.AdminServerAddr,
		Handler: adminMux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting api server", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Error("api server shutdown failed", "error", err)
		}
		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			log.Error("admin server shutdown failed", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("shutdown complete")
}
