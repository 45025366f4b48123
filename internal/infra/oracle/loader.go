package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
	"github.com/yanqian/betterrest/internal/infra/oracle/linear"
)

// Fetcher returns the raw bytes of the current oracle artifact.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Loader resolves the oracle artifact through a Fetcher and decodes it.
// With a zero refresh interval the artifact is fetched and decoded on every Load.
type Loader struct {
	fetcher Fetcher
	refresh time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	cached   *linear.Model
	loadedAt time.Time
}

// NewLoader constructs a loader over fetcher.
func NewLoader(fetcher Fetcher, refresh time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher: fetcher,
		refresh: refresh,
		logger:  logger.With("component", "oracle.loader"),
		now:     time.Now,
	}
}

// Load implements bedtime.OracleSource.
func (l *Loader) Load(ctx context.Context) (bedtime.Oracle, error) {
	if l.refresh <= 0 {
		model, err := l.fetchModel(ctx)
		if err != nil {
			return nil, err
		}
		return model, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil && l.now().Sub(l.loadedAt) < l.refresh {
		return l.cached, nil
	}
	model, err := l.fetchModel(ctx)
	if err != nil {
		return nil, err
	}
	if l.cached == nil || l.cached.Version() != model.Version() {
		l.logger.Info("oracle artifact loaded", "version", model.Version())
	}
	l.cached = model
	l.loadedAt = l.now()
	return model, nil
}

func (l *Loader) fetchModel(ctx context.Context) (*linear.Model, error) {
	data, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch oracle artifact: %w", err)
	}
	model, err := linear.Decode(data)
	if err != nil {
		return nil, err
	}
	return model, nil
}

var _ bedtime.OracleSource = (*Loader)(nil)
