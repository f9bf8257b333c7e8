package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IvanShishkin/treelens/internal/classifier"
	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/internal/duplicates"
	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/internal/insights"
	"github.com/IvanShishkin/treelens/internal/naming"
	"github.com/IvanShishkin/treelens/internal/purpose"
	"github.com/IvanShishkin/treelens/internal/sessions"
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// Scanner runs the walk once and feeds the inventory to every analyzer
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	walker           *filesystem.Walker
	classifier       *classifier.Classifier
	purposes         *purpose.Classifier
	insights         *insights.Analyzer
	progressCallback ProgressCallback
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config:   cfg,
		logger:   logger,
		walker:   filesystem.NewWalker(cfg, logger),
		purposes: purpose.NewClassifier(nil),
		insights: insights.NewAnalyzer(logger),
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// Scan walks root and returns the assembled report.
// A cancelled context aborts the scan without a partial report.
func (s *Scanner) Scan(ctx context.Context, root string) (*models.ScanReport, error) {
	start := time.Now()
	s.logger.Info("Starting scan",
		zap.String("path", root),
		zap.Int("workers", s.config.Workers))

	if err := s.initClassifier(); err != nil {
		return nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}

	s.reportProgress("walking", 0, 0, "Collecting files...")
	inv, err := s.walker.Inventory(ctx, root)
	if err != nil {
		return nil, err
	}
	s.reportProgress("walking", len(inv.Files), len(inv.Files), fmt.Sprintf("Found %d files", len(inv.Files)))

	ceiling := filesystem.ParseSize(s.config.MaxSize)

	s.reportProgress("hashing", 0, len(inv.Files), "Hashing file contents...")
	hasher := duplicates.NewHasher(s.config.Workers, ceiling, s.logger)
	hashes, hashStats, err := hasher.HashAll(ctx, inv.Root, inv.Files)
	if err != nil {
		return nil, err
	}
	s.reportProgress("hashing", hashStats.Hashed, len(inv.Files), "Hashing complete")

	s.reportProgress("classifying", 0, 0, "Classifying documents...")
	classified, err := s.classifyFiles(ctx, inv, ceiling)
	if err != nil {
		return nil, err
	}
	s.reportProgress("classifying", len(classified.results), len(classified.results), "Classification complete")

	s.reportProgress("analyzing", 0, 0, "Running structure analyzers...")
	parts := &Parts{
		Inventory:          inv,
		HashStats:          hashStats,
		DuplicateGroups:    duplicates.FindDuplicates(hashes),
		NearDuplicatePairs: duplicates.FindNearDuplicates(inv.Files, s.config.SimilarityThreshold),
		VersionClusters:    duplicates.FindVersionClusters(inv.Files),
		WorkSessions: sessions.Reconstruct(sessions.EventsFromFiles(inv.Files), sessions.Options{
			Gap:      s.config.SessionGap(),
			MinFiles: s.config.SessionMinFiles,
			Limit:    s.config.SessionLimit,
		}),
		Timeline:        sessions.BuildTimeline(inv.Files),
		NamingTally:     naming.Analyze(naming.Identifiers(inv.Files, inv.Dirs)),
		Purposes:        s.purposes.Analyze(inv.Dirs),
		Classifications: classified.results,
		MalformedPaths:  classified.malformed,
		UnreadablePaths: classified.unreadable,
	}

	inaccessible := InaccessiblePaths(parts)
	parts.Insights = s.insights.Analyze(insights.Input{
		Root:              inv.Root,
		Files:             inv.Files,
		InaccessibleCount: len(inaccessible),
		MalformedCount:    len(parts.MalformedPaths),
		TotalSizeBytes:    TotalSize(inv.Files),
		ExtensionCounts:   ExtensionCounts(inv.Files),
		DuplicateGroups:   parts.DuplicateGroups,
		VersionClusters:   parts.VersionClusters,
		EmptyDirectories:  EmptyDirectories(inv.Dirs),
	})

	report := Assemble(parts)
	s.reportProgress("analyzing", 1, 1, "Report assembled")

	s.logger.Info("Scan completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("files", report.FileCount),
		zap.Int("duplicate_groups", len(report.DuplicateGroups)),
		zap.Int("work_sessions", len(report.WorkSessions)))

	return report, nil
}

// initClassifier loads the rule table once
func (s *Scanner) initClassifier() error {
	if s.classifier != nil {
		return nil
	}

	rules := classifier.DefaultRules()
	if s.config.RulesPath != "" {
		loaded, err := classifier.LoadRules(s.config.RulesPath)
		if err != nil {
			return err
		}
		rules = loaded
	}

	c, err := classifier.New(rules)
	if err != nil {
		return err
	}
	s.classifier = c
	s.logger.Info("Loaded classification rules", zap.Int("count", len(c.Rules())))
	return nil
}

type classification struct {
	results    map[string]models.ClassificationResult
	malformed  []string
	unreadable []string
}

// classifyFiles reads and classifies eligible files with a bounded worker pool
func (s *Scanner) classifyFiles(ctx context.Context, inv *filesystem.Inventory, ceiling int64) (*classification, error) {
	var eligible []int
	for i := range inv.Files {
		f := &inv.Files[i]
		if !s.config.ShouldClassify(f.Extension) {
			continue
		}
		if f.SizeBytes > ceiling {
			s.logger.Debug("File above size ceiling, not classified",
				zap.String("path", f.RelativePath),
				zap.Int64("size", f.SizeBytes))
			continue
		}
		eligible = append(eligible, i)
	}

	results := make([]models.ClassificationResult, len(eligible))
	errs := make([]error, len(eligible))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.config.Workers))

	for slot, idx := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := &inv.Files[idx]
			content, err := filesystem.ReadText(inv.AbsPath(f.RelativePath))
			if err != nil {
				errs[slot] = err
				return nil
			}
			results[slot], errs[slot] = s.classifier.ClassifyDocument(f.Extension, content, s.config.ClassifySections)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &classification{results: make(map[string]models.ClassificationResult, len(eligible))}
	for slot, idx := range eligible {
		relPath := inv.Files[idx].RelativePath
		err := errs[slot]

		var malformed *filesystem.MalformedContentError
		var access *filesystem.FileAccessError
		switch {
		case err == nil:
			out.results[relPath] = results[slot]
		case errors.As(err, &malformed):
			s.logger.Debug("Malformed content, not classified", zap.String("path", relPath), zap.Int("offset", malformed.Offset))
			out.malformed = append(out.malformed, relPath)
		case errors.As(err, &access):
			s.logger.Warn("Failed to read file", zap.String("path", relPath), zap.Error(err))
			out.unreadable = append(out.unreadable, relPath)
		default:
			s.logger.Warn("Failed to classify file", zap.String("path", relPath), zap.Error(err))
			out.malformed = append(out.malformed, relPath)
		}
	}

	return out, nil
}
