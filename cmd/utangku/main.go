package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"utangku/internal/api"
	"utangku/internal/config"
	"utangku/internal/ledger"
	"utangku/internal/log"
	"utangku/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors when absent)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	sessions := session.NewStore(cfg.SessionFile)
	sessions.SetInvalidateHandler(func() {
		fmt.Fprintln(os.Stderr, "Session expired. Run 'utangku signin' to continue.")
	})

	client := api.New(api.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.HTTPTimeout,
		Sessions: sessions,
		Logger:   logger.WithComponent(log.ComponentAPI),
	})

	app := &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		client:   client,
		ledger:   ledger.NewCollection(client, logger.WithComponent(log.ComponentLedger)),
		stdout:   os.Stdout,
	}

	if len(os.Args) < 2 {
		app.usage()
		os.Exit(2)
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		if api.IsAuthError(err) {
			fmt.Fprintln(os.Stderr, "Error: you are not signed in. Run 'utangku signin' first.")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
