// seed loads the hero catalog from a YAML file and optionally creates or
// promotes an admin account.
//
//	seed --file heroes.yaml [--admin-name N --admin-password P] [--database-url URL]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dom/hero-archive/internal/logging"
	"github.com/dom/hero-archive/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		filePath      string
		adminName     string
		adminPassword string
		databaseURL   string
		logLevel      string
	)

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVarP(&filePath, "file", "f", "heroes.yaml", "path to the hero catalog YAML file")
	flagSet.StringVar(&adminName, "admin-name", "", "display name of an account to create or promote to admin")
	flagSet.StringVar(&adminPassword, "admin-password", "", "password for a newly created admin account")
	flagSet.StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL (default $DATABASE_URL)")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if databaseURL == "" {
		return fmt.Errorf("--database-url or DATABASE_URL is required")
	}

	logger := logging.New(os.Stderr, logLevel, "text")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	heroes, err := loadCatalog(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}

	db, err := postgres.NewConnection(databaseURL, logging.GormLevel(logLevel))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	repos := postgres.NewRepositories(db)

	s := &seeder{heroes: repos.Hero, users: repos.User, logger: logger}

	n, err := s.seedHeroes(ctx, heroes)
	if err != nil {
		return err
	}
	logger.Info("catalog seeded", "heroes", n, "file", filePath)

	if adminName != "" {
		if err := s.ensureAdmin(ctx, adminName, adminPassword); err != nil {
			return err
		}
	}
	return nil
}
