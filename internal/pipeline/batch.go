package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"voxscribe/internal/logging"
	"voxscribe/internal/media"
	"voxscribe/internal/services"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".voxscribe.lock"

// AcquireLock takes a non-blocking lock on the output directory. A second
// run against the same directory fails immediately instead of interleaving
// artifacts.
func AcquireLock(outputDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}
	lock := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is already processing %s", outputDir)
	}
	return lock, nil
}

// DiscoverFiles enumerates the supported media files in dir, sorted by name.
// A non-empty pattern additionally filters by filename glob.
func DiscoverFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "batch", "read directory", "input directory unavailable", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !media.IsSupported(name) {
			continue
		}
		if pattern != "" {
			matched, err := filepath.Match(pattern, name)
			if err != nil {
				return nil, services.Wrap(services.ErrConfiguration, "batch", "match pattern", fmt.Sprintf("invalid glob pattern %q", pattern), err)
			}
			if !matched {
				continue
			}
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// ProcessBatch runs every discovered file sequentially. A failing file is
// recorded and the batch moves on; only context cancellation aborts the run.
func (o *Orchestrator) ProcessBatch(ctx context.Context, dir, pattern string) (BatchResult, error) {
	files, err := DiscoverFiles(dir, pattern)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Total: len(files)}
	if len(files) == 0 {
		o.logger.Warn("no supported media files found",
			logging.String("directory", dir),
			logging.String("pattern", pattern),
		)
		return result, nil
	}

	o.logger.Info("batch started",
		logging.String("directory", dir),
		logging.Int("files", len(files)),
	)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		item, err := o.ProcessFile(ctx, file)
		result.Items = append(result.Items, item)
		if err != nil {
			if ctx.Err() != nil {
				result.Failed++
				return result, ctx.Err()
			}
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	o.logger.Info("batch finished",
		logging.Int("total", result.Total),
		logging.Int("succeeded", result.Succeeded),
		logging.Int("failed", result.Failed),
	)
	return result, nil
}
