package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/versebank/banking/app"
	"github.com/versebank/banking/config"
	"github.com/versebank/banking/infra/initializer"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	fiberApp := app.New(*deps)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return fiberApp.Listen(addr)
}
