package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/api"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP simulation API",
	Long: `Serve the simulation over HTTP and WebSocket.

Endpoints:
  GET    /healthz
  GET    /collections
  GET    /collections/:id/levels/:n
  POST   /step          {"board": "...", "ticks": 5}
  POST   /validate      {"board": "..."}
  GET    /ws/run?board=...&interval=250&max=100
  GET    /boards, GET/PUT/DELETE /boards/:name

Examples:
  cells api
  cells api --addr :9000
  curl -d '{"board":"1/3,1/0,0-0,0/1MR1x1E","ticks":5}' localhost:8080/step`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (default server.api_addr from config)")
}

func runAPI(_ *cobra.Command, _ []string) error {
	logger := newLogger("cells-api")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	stepper, err := cfg.Stepper()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	addr := cfg.Server.APIAddr
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}

	srv := api.New(api.Options{
		Catalog:        cat,
		Stepper:        stepper,
		Store:          store,
		Logger:         logger,
		StreamInterval: time.Duration(cfg.Server.StreamTickMS) * time.Millisecond,
		MaxTicks:       cfg.Server.StreamMaxTick,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, addr)
}
