package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"restaurant-backoffice/internal/app"
	"restaurant-backoffice/internal/config"
	"restaurant-backoffice/internal/database"
	"restaurant-backoffice/internal/events"
	"restaurant-backoffice/internal/logger"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file")
	flag.Parse()

	lg := logger.New("backoffice")

	path := *cfgPath
	if path == "" {
		var err error
		if path, err = config.FindConfig(); err != nil {
			lg.Error("config_not_found", err, nil)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Pass, cfg.Database.Name)
	if err != nil {
		lg.Error("db_connect_failed", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		lg.Error("db_migrate_failed", err, nil)
		os.Exit(1)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.Rabbit.Host != "" {
		pub, err := events.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
		if err != nil {
			lg.Error("mq_connect_failed", err, nil)
			os.Exit(1)
		}
		publisher = pub
	}
	defer publisher.Close()

	core := app.New(db.Pool, publisher, lg, cfg.Orders)

	if cfg.Bootstrap.AdminEmail != "" {
		if err := core.Users.ProvisionDefaultAdmin(ctx, cfg.Bootstrap.AdminName,
			cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPass); err != nil {
			lg.Error("admin_provision_failed", err, map[string]any{"email": cfg.Bootstrap.AdminEmail})
			os.Exit(1)
		}
		lg.Info("admin_provisioned", map[string]any{"email": cfg.Bootstrap.AdminEmail})
	}

	lg.Info("service_started", map[string]any{
		"strict_status_transitions": cfg.Orders.StrictStatusTransitions,
	})

	<-ctx.Done()
	lg.Info("service_stopped", nil)
}
