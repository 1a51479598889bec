package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"shelfscan/internal/catalog"
	"shelfscan/internal/collection"
	"shelfscan/internal/config"
	"shelfscan/internal/logging"
	"shelfscan/internal/notifications"
	"shelfscan/internal/recon"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

func (c *commandContext) openStore() (*collection.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := collection.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open collection store: %w", err)
	}
	return store, nil
}

func (c *commandContext) newSearcher() (catalog.Searcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client, err := catalog.New(cfg.Catalog.APIKey, cfg.Catalog.BaseURL,
		catalog.WithHTTPClient(&http.Client{Timeout: timeout}))
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	return catalog.NewCachedSearcher(client), nil
}

func (c *commandContext) newResolver(store *collection.Store, logger *slog.Logger) (*recon.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	searcher, err := c.newSearcher()
	if err != nil {
		return nil, err
	}
	opts := recon.ResolverOptions{
		SearchLimit:   cfg.Matching.SearchLimit,
		MinSimilarity: cfg.Matching.MinSimilarity,
		TaskTimeout:   time.Duration(cfg.Matching.TaskTimeout) * time.Second,
	}
	return recon.NewResolver(searcher, store, logger, opts), nil
}

func (c *commandContext) notifier() notifications.Service {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil
	}
	return notifications.NewService(cfg)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
