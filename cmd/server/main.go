// Package main - Entry point for the network diagnosis server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"netdiag/adapters/rulefile"
	"netdiag/api"
	"netdiag/core/engine"
	"netdiag/internal/config"
	"netdiag/internal/logging"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	rulesFile := flag.String("rules", "", "Rule file replacing the built-in rules (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addr, *rulesFile); err != nil {
		fmt.Fprintf(os.Stderr, "netdiag-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr, rulesFile string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if rulesFile != "" {
		cfg.Engine.RulesFile = rulesFile
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	eng, err := engine.NewBuilder(cfg.Engine).
		WithRuleLoader(rulefile.Load).
		WithLogger(logging.Named("engine")).
		Build()
	if err != nil {
		return err
	}

	logging.Info("netdiag server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("defuzzifier", eng.Strategy()),
		zap.Int("rules", len(eng.Rules())),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.NewServer(eng, version, cfg.Server, logging.Named("api")).ListenAndServe(ctx)
}
