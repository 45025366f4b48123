package oracle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileFetcher reads the artifact from the local filesystem.
type FileFetcher struct {
	path string
}

// NewFileFetcher constructs a fetcher for path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: strings.TrimSpace(path)}
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.path == "" {
		return nil, errors.New("oracle artifact path is empty")
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}

var _ Fetcher = (*FileFetcher)(nil)
