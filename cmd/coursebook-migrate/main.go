// Package main is the entry point for the Coursebook schema tool.
// It connects to the configured datastore and synchronizes the schema,
// for deployments that separate schema changes from server startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/config"
	"github.com/prn-tf/coursebook/internal/repository/postgres"
	"github.com/prn-tf/coursebook/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Coursebook Schema Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		if err := runUp(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Schema synchronized")

	case "status":
		if err := runStatus(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runUp applies the schema to the configured datastore.
func runUp(args []string) error {
	cfg, logger, err := load(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(ctx)

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(ctx)

	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// runStatus reports datastore reachability without changing anything.
func runStatus(args []string) error {
	cfg, logger, err := load(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("datastore unreachable: %w", err)
		}
		fmt.Printf("sqlite datastore reachable at %s\n", cfg.Database.Path)

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("datastore unreachable: %w", err)
		}
		fmt.Printf("postgres datastore reachable at %s:%d/%s\n",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	return nil
}

// load parses the shared flags and builds config and logger.
func load(args []string) (*config.Config, zerolog.Logger, error) {
	fs := flag.NewFlagSet("coursebook-migrate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (optional)")
	if err := fs.Parse(args); err != nil {
		return nil, zerolog.Nop(), err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	return cfg, logger, nil
}

func printUsage() {
	fmt.Println(`Coursebook Schema Tool

Usage:
  coursebook-migrate <command> [arguments]

Commands:
  up        Synchronize the schema with the configured datastore
  status    Check datastore reachability
  version   Print version information
  help      Show this help message

Configuration:
  Reads the same config file and COURSEBOOK_ environment variables as
  the server. Pass --config to point at a specific file.

Examples:
  coursebook-migrate up
  coursebook-migrate up --config ./configs/config.yaml
  COURSEBOOK_DATABASE_DRIVER=postgres coursebook-migrate status`)
}
