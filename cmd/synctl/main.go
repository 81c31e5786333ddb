// synctl is the operator CLI for the catalogue sync service. Most commands
// talk to a running instance over its HTTP API; test-connection goes straight
// to the supplier with the configured credentials.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/supplyline/catsync/internal/config"
	"github.com/supplyline/catsync/internal/supplier"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "sync":
		err = runSync(os.Args[2:])
	case "status":
		err = runStatus()
	case "clear-lock":
		err = runClearLock()
	case "stats":
		err = runStats(os.Args[2:])
	case "test-connection":
		err = runTestConnection()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: synctl <command> [args...]")
	fmt.Println("Commands:")
	fmt.Println("  sync [--categories-only|--products-only]  Trigger a sync run")
	fmt.Println("  status                                    Show sync status and markers")
	fmt.Println("  clear-lock                                Force-release a stuck run lock")
	fmt.Println("  stats [daily|weekly|monthly]              Show aggregated run statistics")
	fmt.Println("  test-connection                           Authenticate against the supplier API")
}

// runTestConnection authenticates with the supplier directly, bypassing the
// service. Useful for verifying credentials before a deploy.
func runTestConnection() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := supplier.NewClient(cfg.SupplierBaseURL, cfg.SupplierRegion, cfg.SupplierTimeout, cfg.SupplierRateLimit)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SupplierTimeout)
	defer cancel()

	if _, err := client.Authenticate(ctx, cfg.SupplierEmail, cfg.SupplierPassword, ""); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println("Supplier connection OK")
	return nil
}
