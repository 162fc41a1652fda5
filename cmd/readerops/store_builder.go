package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaegashi/readerops/adapters/store/inmem"
	"github.com/yaegashi/readerops/adapters/store/rdb"
	"github.com/yaegashi/readerops/config/readercfg"
	"github.com/yaegashi/readerops/domain"
)

// backend is the opened store for this run.
type backend struct {
	repos *domain.Repositories
	uow   domain.UnitOfWork
	// events is nil for file: stores, which keep nothing after the run.
	events     *rdb.AnalyticsEventRepository
	account    readercfg.Account
	apiBaseURL string
	close      func() error
}

var currentBackend *backend

// findFlag looks a flag up on cmd and its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL returns the db-url, env taking precedence over the flag.
func getDBURL(cmd *cobra.Command) string {
	if u := flagOrEnv(cmd, "db-url", envConfig.DBURL); u != "" {
		return u
	}
	return "file:" + readercfg.DefaultConfigPath
}

// openBackend opens the store named by db-url once per run.
// A file: URL loads the YAML file into an in-memory store.
func openBackend(cmd *cobra.Command) (*backend, error) {
	if currentBackend != nil {
		return currentBackend, nil
	}
	dbURL := getDBURL(cmd)

	var b *backend
	switch {
	case strings.HasPrefix(dbURL, "file:"):
		filePath := strings.TrimPrefix(dbURL, "file:")
		if filePath == "" {
			return nil, fmt.Errorf("file path is required for file: URL")
		}
		cfg, err := readercfg.Load(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", filePath, err)
		}
		store := inmem.NewStore()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if err := store.LoadFromConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config into store: %w", err)
		}
		b = &backend{
			repos:      store.Repositories(),
			uow:        store,
			account:    cfg.Account,
			apiBaseURL: cfg.API.BaseURL,
			close:      func() error { return nil },
		}

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		store, err := rdb.Open(dbURL)
		if err != nil {
			return nil, err
		}
		b = &backend{
			repos:  store.Repositories(),
			uow:    store,
			events: store.Analytics(),
			close:  store.Close,
		}

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
	currentBackend = b
	return b, nil
}

func closeStore() {
	if currentBackend != nil && currentBackend.close != nil {
		_ = currentBackend.close()
	}
	currentBackend = nil
}
