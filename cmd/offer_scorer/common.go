package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jonathan/offer-scorer/internal/analysis"
	"github.com/jonathan/offer-scorer/internal/config"
	"github.com/jonathan/offer-scorer/internal/db"
	"github.com/jonathan/offer-scorer/internal/parsing"
	"github.com/spf13/cobra"
)

// resultCache is a migrated, prunable analysis cache
type resultCache interface {
	analysis.Cache
	Migrate(ctx context.Context) error
	Prune(ctx context.Context) (int64, error)
}

// resolveConfig merges configuration sources. Precedence is flags, then
// environment, then the config file, then built-in defaults.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	env, err := envConfig()
	if err != nil {
		return config.Config{}, err
	}
	cfg := flags.MergeWithDefaults(env)

	if path != "" {
		file, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*file)
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func envConfig() (config.Config, error) {
	cfg := config.Config{DatabaseURL: os.Getenv("DATABASE_URL")}
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid PORT environment variable %q: %w", port, err)
		}
		cfg.Port = n
	}
	return cfg, nil
}

// openCache opens the configured result cache, applies migrations and drops
// expired rows. It returns a nil cache when none is configured.
func openCache(ctx context.Context, cfg config.Config) (resultCache, func(), error) {
	ttl, err := cfg.TTL()
	if err != nil {
		return nil, nil, err
	}

	var (
		cache   resultCache
		closeFn func()
	)
	switch {
	case cfg.DatabaseURL != "":
		pg, err := db.Connect(ctx, cfg.DatabaseURL, ttl)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		cache, closeFn = pg, pg.Close
	case cfg.CachePath != "":
		lite, err := db.OpenSQLite(cfg.CachePath, ttl)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache: %w", err)
		}
		cache = lite
		closeFn = func() {
			if err := lite.Close(); err != nil {
				log.Printf("[cache] close failed: %v", err)
			}
		}
	default:
		return nil, func() {}, nil
	}

	if err := cache.Migrate(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to migrate cache: %w", err)
	}
	if pruned, err := cache.Prune(ctx); err != nil {
		log.Printf("[cache] prune failed: %v", err)
	} else if pruned > 0 {
		log.Printf("[cache] pruned %d expired results", pruned)
	}

	return cache, closeFn, nil
}

// newAnalyzer builds the analysis façade for the resolved configuration
func newAnalyzer(cfg config.Config, cache resultCache, extra ...analysis.Option) *analysis.Analyzer {
	htmlParser := parsing.NewHTMLParser(parsing.WithMainContent(cfg.MainContentOnly))

	opts := []analysis.Option{
		analysis.WithVerbose(cfg.Verbose),
		analysis.WithVariant(htmlParser.Variant()),
	}
	if cache != nil {
		opts = append(opts, analysis.WithCache(cache))
	}
	opts = append(opts, extra...)

	return analysis.New(htmlParser, parsing.NewPDFParser(), opts...)
}

// commandContext returns the command's context, falling back to Background
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
