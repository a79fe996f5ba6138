package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"advisor-api/config"
	"advisor-api/internal/repository"
	"advisor-api/pkg/database"
)

const usage = `
Advisor API - User Store CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create the users collection/table and its unique email index
  status      Check that the configured store is reachable

Flags:
  -driver string    Store driver: mongo or postgres (default from STORE_DRIVER)
  -timeout duration Overall deadline for the command (default 30s)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go -driver postgres status
`

func main() {
	cfg := config.LoadConfig()

	driver := flag.String("driver", cfg.StoreDriver, "Store driver: mongo or postgres")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall deadline for the command")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	users, closeStore, err := connect(ctx, cfg, *driver)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", *driver, err)
	}
	defer closeStore()

	switch command := flag.Arg(0); command {
	case "up":
		runUp(ctx, users, *driver)
	case "status":
		showStatus(ctx, users, *driver)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func connect(ctx context.Context, cfg *config.Config, driver string) (repository.UserRepository, func(), error) {
	switch driver {
	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewUserRepository(pool), pool.Close, nil
	case config.StoreMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoUserRepository(client, cfg.MongoDatabase), func() {
			_ = client.Disconnect(context.Background())
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

func runUp(ctx context.Context, users repository.UserRepository, driver string) {
	log.Printf("Preparing %s user store...", driver)

	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}

	log.Println("User store ready")
}

func showStatus(ctx context.Context, users repository.UserRepository, driver string) {
	if err := users.Ping(ctx); err != nil {
		log.Fatalf("%s unreachable: %v", driver, err)
	}
	log.Printf("%s reachable", driver)
}
