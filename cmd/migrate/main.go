package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/flicky/swiftora-api/internal/config"
	"github.com/flicky/swiftora-api/internal/logger"
	"github.com/flicky/swiftora-api/internal/migrations"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	log := logger.New(logger.Config{Level: *logLevel, Format: "console"})
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()

	mg, err := migrations.New(pool, log)
	if err != nil {
		log.Fatal("init migrations", zap.Error(err))
	}
	defer func() { _ = mg.Close() }()

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
		var (
			version uint
			dirty   bool
		)
		if version, dirty, err = mg.Version(); err == nil {
			log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command>

Commands:
  up        apply all pending migrations
  down      roll back every migration
  version   print the current schema version

Flags:
`)
	flag.PrintDefaults()
}
