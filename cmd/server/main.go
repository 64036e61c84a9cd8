package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/arturoeanton/health-planner/internal/adapter/ai"
	"github.com/arturoeanton/health-planner/internal/adapter/auth"
	"github.com/arturoeanton/health-planner/internal/adapter/notify"
	"github.com/arturoeanton/health-planner/internal/adapter/store"
	"github.com/arturoeanton/health-planner/internal/handler"
	"github.com/arturoeanton/health-planner/internal/logging"
	"github.com/arturoeanton/health-planner/internal/mcp"
	"github.com/arturoeanton/health-planner/internal/middleware"
	"github.com/arturoeanton/health-planner/internal/planner"
	"github.com/arturoeanton/health-planner/internal/port"
	"github.com/arturoeanton/health-planner/internal/service"
	"github.com/arturoeanton/health-planner/internal/tools"
	"github.com/arturoeanton/health-planner/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()
	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("🚀 Starting Health Planner",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"database", cfg.DatabaseName,
		"llm_provider", cfg.LLMProvider,
		"llm_model", cfg.LLMModelName,
		"mcp_enabled", cfg.MCPEnabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if cfg.RunMigrations {
		if err := pgStore.Migrate(ctx); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// ── Redis (optional) ─────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, notifications and rate limiting may fail", "error", err)
		}
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTIssuer)
	if err != nil {
		slog.Error("failed to create token issuer", "error", err)
		os.Exit(1)
	}

	llm := newCompletionProvider(cfg)
	notifier := notify.NewNotifier(rdb)

	// ── Services ─────────────────────────────────────────────────────────
	meals := tools.NewMealPlanner(nil)
	orchestrator := planner.New(llm, meals)

	authService := service.NewAuthService(pgStore, hasher, issuer, cfg.AccessTokenTTL())
	profileService := service.NewProfileService(pgStore)
	planService := service.NewPlanService(pgStore, meals, notifier, orchestrator)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.AuditMiddleware(pgStore))

	// ── Public Routes ────────────────────────────────────────────────────
	healthHandler := handler.NewHealthHandler(pgStore, cfg.AppName)
	app.Get("/api/v1/health", healthHandler.Liveness)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	protected := middleware.BearerAuth(authService)
	api := app.Group("/api")

	authHandler := handler.NewAuthHandler(authService)
	authHandler.Register(api, protected)

	// ── Protected Routes ─────────────────────────────────────────────────
	health := api.Group("/health", protected)
	health.Get("/ping", healthHandler.Ping)

	profileHandler := handler.NewProfileHandler(profileService)
	profileHandler.Register(health)

	planLimiter := middleware.RateLimit(rdb, cfg.PlanRateLimit, cfg.PlanRateWindow(), "plan")
	planHandler := handler.NewPlanHandler(planService)
	planHandler.Register(health, planLimiter)

	auditHandler := handler.NewAuditHandler(pgStore)
	auditHandler.Register(api, protected)

	// ── MCP Server (separate port) ───────────────────────────────────────
	var mcpServer *mcp.Server
	if cfg.MCPEnabled {
		mcpServer = mcp.NewServer(orchestrator, pgStore, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(); err != nil {
				slog.Error("MCP server failed", "error", err)
			}
		}()
	}

	// ── Start ────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		slog.Info("🌐 Fiber listening", "port", cfg.Port)
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("fiber shutdown failed", "error", err)
	}
	if mcpServer != nil {
		if err := mcpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("MCP shutdown failed", "error", err)
		}
	}
}

func newCompletionProvider(cfg *config.Config) port.CompletionProvider {
	endpoint := ai.EndpointConfig{
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModelName,
		Token:   cfg.LLMAPIToken,
	}
	if cfg.LLMProvider == "openai" {
		return ai.NewOpenAIProvider(endpoint)
	}
	return ai.NewOllamaProvider(endpoint)
}
