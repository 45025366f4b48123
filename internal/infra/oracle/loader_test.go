package oracle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
)

const artifactV1 = `
name: sleep-calculator
version: v1
kind: linear
features: [wake, estimatedSleep, coffee]
output: actualSleep
intercept: 0
coefficients: [0, 3600, 0]
`

func TestLoaderFetchesEveryCallWithoutRefresh(t *testing.T) {
	fetcher := &stubFetcher{payloads: [][]byte{[]byte(artifactV1)}}
	loader := NewLoader(fetcher, 0, newTestLogger())

	for i := 0; i < 3; i++ {
		oracle, err := loader.Load(context.Background())
		require.NoError(t, err)
		got, err := oracle.Predict(context.Background(), bedtime.Features{EstimatedSleep: 8})
		require.NoError(t, err)
		require.Equal(t, 8*3600.0, got)
	}
	require.Equal(t, 3, fetcher.calls)
}

func TestLoaderCachesWithinRefreshInterval(t *testing.T) {
	fetcher := &stubFetcher{payloads: [][]byte{[]byte(artifactV1)}}
	loader := NewLoader(fetcher, time.Minute, newTestLogger())
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	loader.now = func() time.Time { return now }

	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.calls)

	now = now.Add(2 * time.Minute)
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, fetcher.calls)
}

func TestLoaderPropagatesFailures(t *testing.T) {
	loader := NewLoader(&stubFetcher{err: errors.New("bucket unreachable")}, 0, newTestLogger())
	_, err := loader.Load(context.Background())
	require.ErrorContains(t, err, "bucket unreachable")

	loader = NewLoader(&stubFetcher{payloads: [][]byte{[]byte("kind: tree")}}, time.Minute, newTestLogger())
	_, err = loader.Load(context.Background())
	require.Error(t, err)
	require.Nil(t, loader.cached)

	rec, err := bedtime.Estimate(context.Background(), loader, bedtime.DefaultInput(), bedtime.Clock12h)
	require.ErrorIs(t, err, bedtime.ErrEstimation)
	require.Equal(t, bedtime.ErrorMessage, bedtime.Display(rec, err))
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleep_calculator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(artifactV1), 0o600))

	oracle, err := NewLoader(NewFileFetcher(path), 0, newTestLogger()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "sleep-calculator@v1", oracle.(interface{ Version() string }).Version())

	_, err = NewFileFetcher(filepath.Join(t.TempDir(), "missing.yaml")).Fetch(context.Background())
	require.Error(t, err)

	_, err = NewFileFetcher(" ").Fetch(context.Background())
	require.Error(t, err)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "account.r2.cloudflarestorage.com", sanitizeEndpoint("https://account.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint("http://localhost:9000"))
	require.Equal(t, "s3.amazonaws.com", sanitizeEndpoint(" s3.amazonaws.com "))
}

type stubFetcher struct {
	payloads [][]byte
	err      error
	calls    int
}

func (s *stubFetcher) Fetch(context.Context) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	idx := s.calls - 1
	if idx >= len(s.payloads) {
		idx = len(s.payloads) - 1
	}
	return s.payloads[idx], nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
