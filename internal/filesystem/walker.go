package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
)

// WalkStats counts what the walker saw besides regular files
type WalkStats struct {
	Files             int
	Dirs              int
	Symlinks          int
	Inaccessible      int
	InaccessiblePaths []string
}

// Inventory is the in-memory result of one walk
type Inventory struct {
	Root  string
	Files []models.FileRecord
	Dirs  []models.DirRecord
	Stats WalkStats
}

// AbsPath resolves a relative path of the inventory against its root
func (inv *Inventory) AbsPath(relPath string) string {
	return filepath.Join(inv.Root, filepath.FromSlash(relPath))
}

// Walker walks the filesystem and produces file records
type Walker struct {
	config  *config.Config
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	exclude := make(map[string]bool)
	for _, dir := range cfg.Exclude {
		exclude[dir] = true
	}

	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: exclude,
	}
}

// ValidateRoot checks that root exists and is a directory
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &InvalidRootError{Path: root, Reason: "cannot stat", Err: err}
	}
	if !info.IsDir() {
		return &InvalidRootError{Path: root, Reason: "not a directory"}
	}
	return nil
}

// Walk recursively walks the directory tree and calls callback for every regular file
func (w *Walker) Walk(ctx context.Context, root string, callback func(*models.FileRecord) error) (*WalkStats, error) {
	stats, _, err := w.walk(ctx, root, callback)
	return stats, err
}

// Inventory walks root and collects files and directory records
func (w *Walker) Inventory(ctx context.Context, root string) (*Inventory, error) {
	inv := &Inventory{Root: root}
	stats, dirs, err := w.walk(ctx, root, func(rec *models.FileRecord) error {
		inv.Files = append(inv.Files, *rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	inv.Dirs = dirs
	inv.Stats = *stats
	return inv, nil
}

type dirCounter struct {
	record     models.DirRecord
	entries    int
	unreadable bool
}

func (w *Walker) walk(ctx context.Context, root string, callback func(*models.FileRecord) error) (*WalkStats, []models.DirRecord, error) {
	if err := ValidateRoot(root); err != nil {
		return nil, nil, err
	}

	// A symlinked root is followed once; links below it never are
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, nil, &InvalidRootError{Path: root, Reason: "cannot resolve", Err: err}
	}
	root = resolved

	stats := &WalkStats{}
	counters := make(map[string]*dirCounter)
	var order []string

	// parentOf returns the counter of the directory containing relPath
	parentOf := func(relPath string) *dirCounter {
		dir := path.Dir(relPath)
		if dir == "." {
			return nil
		}
		return counters[dir]
	}

	err = filepath.WalkDir(root, func(fullPath string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relPath, relErr := filepath.Rel(root, fullPath)
		if relErr != nil {
			relPath = fullPath
		}
		relPath = filepath.ToSlash(relPath)

		if err != nil {
			// ReadDir failure is reported a second time for an already visited directory
			w.logger.Warn("Error accessing path", zap.String("path", relPath), zap.Error(err))
			stats.Inaccessible++
			stats.InaccessiblePaths = append(stats.InaccessiblePaths, relPath)
			if c, ok := counters[relPath]; ok {
				c.unreadable = true
			} else if p := parentOf(relPath); p != nil {
				p.entries++
			}
			if d != nil && d.IsDir() && relPath != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if relPath == "." {
			return nil
		}

		parent := parentOf(relPath)
		if parent != nil {
			parent.entries++
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			stats.Symlinks++
			w.logger.Debug("Skipping symlink", zap.String("path", relPath))
			return nil

		case d.IsDir():
			if parent != nil {
				parent.record.SubdirCount++
			}
			if w.exclude[d.Name()] {
				w.logger.Debug("Skipping excluded directory", zap.String("path", relPath))
				return filepath.SkipDir
			}
			stats.Dirs++
			counters[relPath] = &dirCounter{record: models.DirRecord{RelativePath: relPath, Name: d.Name()}}
			order = append(order, relPath)
			return nil

		case !d.Type().IsRegular():
			w.logger.Debug("Skipping irregular file", zap.String("path", relPath))
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.logger.Warn("Error reading file info", zap.String("path", relPath), zap.Error(err))
			stats.Inaccessible++
			stats.InaccessiblePaths = append(stats.InaccessiblePaths, relPath)
			return nil
		}

		if parent != nil {
			parent.record.FileCount++
		}
		stats.Files++

		name := d.Name()
		record := &models.FileRecord{
			RelativePath: relPath,
			Name:         name,
			Extension:    strings.ToLower(GetExtension(name)),
			SizeBytes:    info.Size(),
			ModifiedAt:   info.ModTime().UTC(),
			CreatedAt:    getChangeTime(info).UTC(),
			IsHidden:     isHidden(name),
		}
		return callback(record)
	})
	if err != nil {
		return nil, nil, err
	}

	dirs := make([]models.DirRecord, 0, len(order))
	for _, relPath := range order {
		c := counters[relPath]
		c.record.Empty = c.entries == 0 && !c.unreadable
		dirs = append(dirs, c.record)
	}

	return stats, dirs, nil
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
