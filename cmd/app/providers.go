package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/exchanger/internal/domain/currency"
	"github.com/yanqian/exchanger/internal/infra/config"
	"github.com/yanqian/exchanger/internal/infra/exchangerate"
	"github.com/yanqian/exchanger/internal/infra/ratearchive"
	"github.com/yanqian/exchanger/internal/infra/ratestore"
)

func provideCurrencyConfig(cfg *config.Config) currency.Config {
	return currency.Config{
		DefaultBase:       cfg.Currency.DefaultBase,
		RatesTTL:          cfg.Cache.RatesTTL,
		HistoricalTTL:     cfg.Cache.HistoricalTTL,
		MaxHistoricalDays: cfg.Currency.MaxHistoricalDays,
	}
}

func provideRateClient(cfg *config.Config) *exchangerate.Client {
	return exchangerate.NewClient(cfg.ExchangeRate.BaseURL, cfg.ExchangeRate.APIKey, cfg.ExchangeRate.Timeout)
}

func provideRateStore(cfg *config.Config, logger *slog.Logger) (currency.Store, func()) {
	fallback := func() (currency.Store, func()) {
		return ratestore.NewMemoryStore(cfg.Cache.MaxEntries), func() {}
	}
	if !cfg.Cache.Valkey.Enabled {
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("rate cache valkey store enabled", "addr", cfg.Cache.Valkey.Addr)
	return ratestore.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) (currency.HistoryRepository, func()) {
	fallback := func() (currency.HistoryRepository, func()) {
		return ratearchive.NewMemoryRepository(), func() {}
	}
	dsn := strings.TrimSpace(cfg.Archive.Postgres.DSN)
	if dsn == "" {
		logger.Info("archive postgres dsn not set, using memory repository")
		return fallback()
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback()
	}
	if cfg.Archive.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Archive.Postgres.MaxConns
	}
	if cfg.Archive.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Archive.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback()
	}
	repo := ratearchive.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to create archive schema, using memory repository", "error", err)
		pool.Close()
		return fallback()
	}
	logger.Info("archive postgres repository enabled")
	return repo, pool.Close
}
