// Package download hands selected granules to the external bulk download
// utility. Retry and backoff belong to that utility, not to this layer.
package download

import (
	"context"
)

// Status is the per-granule outcome of a download run
type Status struct {
	GranuleID string
	Path      string
	Err       error
}

// Downloader fetches raw scene archives for the given granule ids into the
// destination directory, reporting success or failure per granule
type Downloader interface {
	Download(ctx context.Context, granuleIDs []string, destDir string) ([]Status, error)
}
