package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
	"github.com/yanqian/betterrest/internal/domain/form"
	"github.com/yanqian/betterrest/internal/infra/config"
	"github.com/yanqian/betterrest/internal/infra/formstore"
)

func provideBedtimeConfig(cfg *config.Config) bedtime.Config {
	return bedtime.Config{
		ClockStyle: bedtime.ClockStyle(cfg.Bedtime.ClockStyle),
	}
}

func provideFormConfig(cfg *config.Config) form.Config {
	return form.Config{
		TTL:        cfg.Forms.TTL,
		ClockStyle: bedtime.ClockStyle(cfg.Bedtime.ClockStyle),
	}
}

func provideFormStore(cfg *config.Config, logger *slog.Logger) (form.Store, func()) {
	noop := func() {}
	if !cfg.Forms.Redis.Enabled {
		logger.Info("form sessions kept in memory")
		return formstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Forms.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return formstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return formstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return formstore.NewMemoryStore(), noop
	}
	logger.Info("form sessions kept in valkey", "addr", cfg.Forms.Redis.Addr)
	return formstore.NewValkeyStore(client, cfg.Forms.Redis.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
