package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"netdiag/api"
	"netdiag/internal/config"
	"netdiag/internal/logging"
)

var (
	serveAddr      string
	serveOverrides engineOverrides
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the diagnosis HTTP API",
	Long: `Serve the diagnosis HTTP API until interrupted.

Endpoints:
  POST /diagnose          diagnose one set of symptoms (?explain=true)
  POST /diagnose/batch    diagnose {"items": [...]} in input order
  GET  /cases             built-in cases and their diagnoses
  GET  /rules             active rule set
  GET  /membership        sampled membership functions (?samples=N)
  GET  /health, /version`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveOverrides.register(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	eng, err := buildEngine(serveOverrides.apply(cmd, cfg.Engine))
	if err != nil {
		return err
	}

	srvCfg := cfg.Server
	if serveAddr != "" {
		srvCfg.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.NewServer(eng, version, srvCfg, logging.Named("api")).ListenAndServe(ctx)
}
