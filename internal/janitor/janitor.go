// Package janitor periodically empties the scratch directory. The streaming
// path never persists media to disk, so anything accumulating there is
// incidental and safe to delete wholesale.
package janitor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
)

// Janitor sweeps a scratch directory on a fixed interval. It holds no state
// beyond the injected path and interval.
type Janitor struct {
	dir      string
	interval time.Duration
}

// New creates a Janitor for the given directory and sweep interval.
func New(dir string, interval time.Duration) *Janitor {
	return &Janitor{dir: dir, interval: interval}
}

// Run sweeps on every interval tick until the context is cancelled. The
// timer is independent of any request; a sweep racing an in-flight scratch
// write is acceptable by design of the streaming path.
func (j *Janitor) Run(ctx context.Context) {
	logger := config.GetLogger()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := j.Sweep()
			if err != nil {
				logger.Error().Err(err).Str("dir", j.dir).Msg("Scratch sweep failed")
				continue
			}
			if removed > 0 {
				logger.Info().Int("removed", removed).Str("dir", j.dir).Msg("Swept scratch directory")
			}
		}
	}
}

// Sweep deletes every regular file in the scratch directory, returning how
// many were removed. Subdirectories are left alone.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return 0, err
	}

	logger := config.GetLogger()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Error().Err(err).Str("file", path).Msg("Failed to delete scratch file")
			continue
		}
		removed++
	}
	return removed, nil
}
