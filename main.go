package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"restaurant-pos/bot"
	"restaurant-pos/config"
	"restaurant-pos/console"
	"restaurant-pos/db"
	"restaurant-pos/logger"
	"restaurant-pos/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.NewForEnvironment(cfg.Env, cfg.Log.Level, cfg.Log.Format, cfg.LogOutput())
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(ctx, cfg, log); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
		return
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	catalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		// Nothing is rendered without a complete menu.
		return err
	}
	log.Info("catalog loaded", zap.String("source", cfg.Catalog.Source), zap.Int("items", catalog.Len()))

	if cfg.Telegram.Token == "" {
		session := services.NewSession(catalog, services.WithLogger(log), services.WithMaxLineQty(cfg.Order.MaxLineQty))
		return console.New(os.Stdin, os.Stdout, catalog, session, cfg.Telegram.Lang, log).Run(ctx)
	}

	b, err := bot.New(cfg, catalog, log)
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}
	log.Info("bot started")
	b.Start(ctx)
	return nil
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*services.Catalog, error) {
	if !cfg.UsesDB() {
		return services.LoadCatalogFile(cfg.Catalog.Path)
	}
	if err := db.Init(ctx, cfg.DB); err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	defer db.Close()

	// Set AUTO_MIGRATE=1 (or "true") to create and seed menu_items on a fresh DB.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(ctx, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return services.LoadCatalogFromDB(ctx, db.Pool)
}

func runMigrate(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if err := db.Init(ctx, cfg.DB); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()
	return applyMigrations(ctx, log)
}
