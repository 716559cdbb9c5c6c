// Package main is the entry point for the Coursebook admin CLI.
// This tool provides administrative commands that bypass the HTTP API,
// such as seeding the first user accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/config"
	"github.com/prn-tf/coursebook/internal/repository"
	"github.com/prn-tf/coursebook/internal/repository/postgres"
	"github.com/prn-tf/coursebook/internal/repository/sqlite"
	"github.com/prn-tf/coursebook/internal/service"
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
		fmt.Printf("Coursebook Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
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

// runUserCommand dispatches user subcommands.
func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing user subcommand (expected: create)")
	}

	switch args[0] {
	case "create":
		return runUserCreate(args[1:])
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

// runUserCreate registers a user directly against the datastore.
func runUserCreate(args []string) error {
	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (optional)")
	firstName := fs.String("first-name", "", "user first name (required)")
	lastName := fs.String("last-name", "", "user last name (required)")
	email := fs.String("email", "", "user email address (required)")
	password := fs.String("password", "", "user password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *firstName == "" || *lastName == "" || *email == "" || *password == "" {
		return fmt.Errorf("--first-name, --last-name, --email and --password are all required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo, closeDB, err := openUserRepository(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer closeDB()

	userService := service.NewUserService(userRepo, logger)
	out, err := userService.Create(ctx, service.CreateUserInput{
		FirstName:    *firstName,
		LastName:     *lastName,
		EmailAddress: *email,
		Password:     *password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("User created: id=%d email=%s\n", out.User.ID, out.User.EmailAddress)
	return nil
}

// openUserRepository connects to the configured datastore and applies the
// schema before returning the user repository.
func openUserRepository(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (repository.UserRepository, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewUserRepository(db), func() { db.Close() }, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewUserRepository(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func printUsage() {
	fmt.Println(`Coursebook Admin CLI

Usage:
  coursebook-admin <command> [arguments]

Commands:
  user create   Create a user account directly in the datastore
  version       Print version information
  help          Show this help message

Examples:
  coursebook-admin user create --first-name Joe --last-name Smith \
    --email joe@smith.com --password joepassword
  coursebook-admin user create --config ./configs/config.yaml \
    --first-name Sally --last-name Jones --email sally@jones.com --password sallypassword

Use "coursebook-admin user create --help" for flag details.`)
}
