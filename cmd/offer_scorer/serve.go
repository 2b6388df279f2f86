package main

import (
	"fmt"

	"github.com/jonathan/offer-scorer/internal/config"
	"github.com/jonathan/offer-scorer/internal/server"
	"github.com/jonathan/offer-scorer/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes POST /analyze and GET /health.
Results are cached in PostgreSQL when DATABASE_URL is set, or in SQLite when cache_path is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, fmt.Sprintf("Port to listen on (default %d)", config.DefaultPort))
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON or YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, err := buildServer(cmd)
	if err != nil {
		return err
	}
	return srv.Start()
}

// buildServer resolves configuration and wires the analyzer, cache and limiter.
// The returned server owns the cache and closes it on shutdown.
func buildServer(cmd *cobra.Command) (*server.Server, error) {
	cfg, err := resolveConfig(serveConfig, config.Config{Port: servePort})
	if err != nil {
		return nil, err
	}

	cache, closeCache, err := openCache(commandContext(cmd), cfg)
	if err != nil {
		return nil, err
	}

	srv := server.New(server.Config{
		Port:         cfg.Port,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, newAnalyzer(cfg, cache), ratelimit.NewLimiter(ratelimit.LoadConfig()))
	srv.OnShutdown(closeCache)

	return srv, nil
}
