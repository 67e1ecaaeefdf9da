// Command crdsnode runs a standalone gossip node: it loads a config
// file, starts the CrdsTable, joins the memberlist cluster described in
// the config, and serves Prometheus metrics until interrupted.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/crds/config"
	"github.com/tos-network/crds/crds"
	"github.com/tos-network/crds/gossip"
	"github.com/tos-network/crds/log"
	"github.com/tos-network/crds/metrics"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path to the node's YAML configuration file",
	Value:   "./crdsnode.yaml",
	EnvVars: []string{"CRDSNODE_CONFIG"},
}

var devLogFlag = &cli.BoolFlag{
	Name:  "dev-log",
	Usage: "use a console-encoded, debug-level logger instead of the production JSON logger",
}

var app = &cli.App{
	Name:   "crdsnode",
	Usage:  "a standalone Cluster Replicated Data Store gossip node",
	Flags:  []cli.Flag{configFlag, devLogFlag},
	Action: run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return fmt.Errorf("crdsnode: %w", err)
	}

	logger, err := newLogger(ctx.Bool(devLogFlag.Name))
	if err != nil {
		return fmt.Errorf("crdsnode: init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting crdsnode", "node_id", cfg.Server.NodeID, "bind", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.BindPort))

	m := metrics.NewMetrics()
	table := crds.NewTable(log.NewCrdsAdapter(logger))

	svc, err := gossip.New(cfg, table, m, logger)
	if err != nil {
		return fmt.Errorf("crdsnode: start gossip service: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(runCtx)

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, logger)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	cancel()
	return svc.Shutdown()
}

func newLogger(dev bool) (*log.Logger, error) {
	if dev {
		return log.NewDevelopment()
	}
	return log.New()
}

func serveMetrics(cfg *config.Config, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)
	logger.Info("serving metrics", "addr", addr, "path", cfg.Metrics.Path)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "err", err)
	}
}
