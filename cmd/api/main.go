// Package main provides the entry point for the Matchmaker API server
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/alchemorsel/matchmaker/internal/infrastructure/container"
)

func main() {
	configPath := flag.String("config", "", "path to a config file; defaults to ./config.yaml, ./config/config.yaml or /etc/matchmaker/config.yaml")
	flag.Parse()

	app := fx.New(
		fx.NopLogger,
		container.Module(*configPath),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Either a signal or a server failure ends the run.
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		if sig.ExitCode != 0 {
			log.Printf("Application requested shutdown with exit code %d", sig.ExitCode)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Fatalf("Failed to stop application gracefully: %v", err)
	}
}
