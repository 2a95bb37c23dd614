package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/core/config"
	"bizdir.app/directory/core/db"
)

const usage = "usage: migrate <up|down|status|reset>"

func main() {
	ctx := context.Background()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	slog.InfoContext(ctx, "running migrations", "command", command)
	if err := db.Migrate(ctx, cfg.DB.DSN, command); err != nil {
		slog.ErrorContext(ctx, "migration failed", "command", command, "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migrations complete", "command", command)
}
