package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/itjamaat/jamaatbot/internal/config"
	"github.com/itjamaat/jamaatbot/internal/database"
	"github.com/itjamaat/jamaatbot/internal/flow"
	"github.com/itjamaat/jamaatbot/internal/logger"
	"github.com/itjamaat/jamaatbot/internal/service"
	"github.com/itjamaat/jamaatbot/internal/storage"
	tg "github.com/itjamaat/jamaatbot/internal/telegram"
	"github.com/itjamaat/jamaatbot/internal/telegram/handlers"
	"github.com/itjamaat/jamaatbot/internal/telegram/middleware"
	"github.com/itjamaat/jamaatbot/internal/telegram/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("bot: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments pass environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	store := storage.NewStore(db)
	if err := store.Probe(ctx); err != nil {
		return err
	}

	svc := service.New(store)
	flows := flow.NewManager()
	h := handlers.New(svc, flows, cfg.Telegram.AdminIDs)

	reg := tg.NewRegistry()
	h.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs: cfg.Telegram.AdminIDs,
	})
	routes = append(routes, router.TextRoutes(h, reg, router.TextOptions{
		AdminIDs: cfg.Telegram.AdminIDs,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
	for _, kind := range cfg.RateLimit.ExcludeUpdates {
		exclude[kind] = struct{}{}
	}
	middlewares := []tg.Middleware{
		{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:  exclude,
			}),
		},
	}

	startedAt := time.Now()
	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart: func(ctx context.Context, _ *tg.Registry) error {
			logger.Info(ctx, "app", "ready",
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ *tg.Registry) error {
			logger.Info(ctx, "app", "shutdown")
			return nil
		},
	})
}
