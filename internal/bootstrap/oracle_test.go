package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
	"github.com/yanqian/betterrest/internal/infra/config"
)

func TestNewOracleLoaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	artifact := "name: sleep-calculator\nversion: test\nkind: linear\nfeatures: [wake, estimatedSleep, coffee]\noutput: actualSleep\nintercept: 0\ncoefficients: [0, 3600, 0]\n"
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o600))

	cfg := &config.Config{Oracle: config.OracleConfig{Source: config.OracleSourceFile, Path: path}}
	loader, cleanup, err := NewOracleLoader(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer cleanup()

	rec, err := bedtime.Estimate(context.Background(), loader, bedtime.DefaultInput(), bedtime.Clock12h)
	require.NoError(t, err)
	require.Equal(t, "11:00 PM", rec.Bedtime)
	require.Equal(t, "sleep-calculator@test", rec.ModelVersion)
}

func TestNewOracleLoaderRejectsUnknownSource(t *testing.T) {
	cfg := &config.Config{Oracle: config.OracleConfig{Source: "coreml"}}
	_, _, err := NewOracleLoader(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestNewOracleLoaderObjectNeedsBucket(t *testing.T) {
	cfg := &config.Config{Oracle: config.OracleConfig{Source: config.OracleSourceObject, Object: config.ObjectConfig{Endpoint: "https://s3.amazonaws.com"}}}
	_, _, err := NewOracleLoader(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
