package duplicates

import (
	"context"
	"path/filepath"

	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HashResult is the content hash of one file
type HashResult struct {
	RelativePath string
	Hash         string
	SizeBytes    int64
}

// HashStats counts what happened during hashing
type HashStats struct {
	Hashed      int
	Oversize    int
	Failed      int
	FailedPaths []string
}

// Hasher computes content hashes with a bounded worker pool
type Hasher struct {
	workers int
	ceiling int64
	logger  *zap.Logger
}

// NewHasher creates a hasher. Files larger than ceiling are skipped entirely.
func NewHasher(workers int, ceiling int64, logger *zap.Logger) *Hasher {
	if workers < 1 {
		workers = 1
	}
	return &Hasher{workers: workers, ceiling: ceiling, logger: logger}
}

// HashAll hashes files under root. Results keep the order of files
// regardless of how many workers ran.
func (h *Hasher) HashAll(ctx context.Context, root string, files []models.FileRecord) ([]HashResult, HashStats, error) {
	hashes := make([]string, len(files))
	errs := make([]error, len(files))
	skipped := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)

	for i := range files {
		if files[i].SizeBytes > h.ceiling {
			skipped[i] = true
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(root, filepath.FromSlash(files[i].RelativePath))
			hashes[i], errs[i] = filesystem.HashFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, HashStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, HashStats{}, err
	}

	var stats HashStats
	results := make([]HashResult, 0, len(files))
	for i, f := range files {
		switch {
		case skipped[i]:
			stats.Oversize++
			h.logger.Debug("File above size ceiling, not hashed",
				zap.String("path", f.RelativePath),
				zap.Int64("size", f.SizeBytes))
		case errs[i] != nil:
			stats.Failed++
			stats.FailedPaths = append(stats.FailedPaths, f.RelativePath)
			h.logger.Warn("Failed to hash file", zap.String("path", f.RelativePath), zap.Error(errs[i]))
		default:
			stats.Hashed++
			results = append(results, HashResult{
				RelativePath: f.RelativePath,
				Hash:         hashes[i],
				SizeBytes:    f.SizeBytes,
			})
		}
	}

	return results, stats, nil
}
