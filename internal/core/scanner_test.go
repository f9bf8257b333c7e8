package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(workers int) *config.Config {
	return &config.Config{
		Workers:             workers,
		MaxSize:             "50M",
		Exclude:             config.DefaultExclude,
		SessionGapHours:     4,
		SessionMinFiles:     3,
		SimilarityThreshold: 0.85,
		ClassifyExtensions:  []string{"md", "html"},
		ClassifySections:    true,
		AI:                  config.AIConfig{Model: "haiku", Language: "en"},
	}
}

// buildFixture creates a small project; every file is modified within one hour
func buildFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	files := []struct {
		path    string
		content string
	}{
		{"notes/guide.md", "# Guide\nThis overview is a tutorial on usage with an example.\n"},
		{"src/main.go", "package main\n"},
		{"src/util.go", "package main\n"},
		{"report.md", "# Report\nfirst draft\n"},
		{"report_v2.md", "# Report\nsecond draft\n"},
		{"bad.md", "ok\xff\xfe"},
		{"node_modules/dep/index.js", "module.exports = {}\n"},
	}

	for i, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(f.content), 0644))
		mtime := base.Add(time.Duration(i) * 5 * time.Minute)
		require.NoError(t, os.Chtimes(full, mtime, mtime))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0755))

	return root
}

func TestScan(t *testing.T) {
	root := buildFixture(t)

	report, err := NewScanner(testConfig(4), zap.NewNop()).Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 6, report.FileCount)
	assert.Equal(t, 3, report.DirectoryCount) // notes, src, empty
	assert.Equal(t, 1, report.MalformedCount)
	assert.Equal(t, 0, report.InaccessibleCount)
	assert.Equal(t, 6, report.FilesHashed)

	require.Len(t, report.DuplicateGroups, 1)
	assert.Equal(t, []string{"src/main.go", "src/util.go"}, report.DuplicateGroups[0].Members)
	assert.Equal(t, int64(len("package main\n")), report.DuplicateGroups[0].WastedBytes)

	require.Len(t, report.VersionClusters, 1)
	assert.Equal(t, "report.md", report.VersionClusters[0].BaseName)
	assert.Equal(t, []string{"report.md"}, report.VersionClusters[0].BasePaths)

	require.Len(t, report.WorkSessions, 1)
	assert.Equal(t, 6, report.WorkSessions[0].FileCount)

	assert.Equal(t, []string{"empty"}, report.EmptyDirectories)
	assert.Equal(t, "source_code", report.DirectoryPurposes["src"].Purpose)
	assert.Equal(t, map[string]int{"md": 4, "go": 2}, report.ExtensionCounts)

	guide, ok := report.ClassificationResults["notes/guide.md"]
	require.True(t, ok)
	assert.Equal(t, "documentation", guide.Category)
	require.Len(t, guide.Sections, 1)
	assert.Equal(t, "Guide", guide.Sections[0].Heading)

	_, ok = report.ClassificationResults["bad.md"]
	assert.False(t, ok, "malformed file must not be classified")
	assert.Len(t, report.ClassificationResults, 3)

	for path := range report.ClassificationResults {
		assert.NotContains(t, path, "node_modules")
	}

	assert.Equal(t, "other", report.Insights.ProjectType)
	assert.Equal(t, 2, report.Insights.TechStack.Languages["Go"])
}

func TestScanDeterministic(t *testing.T) {
	root := buildFixture(t)

	var outputs [][]byte
	for _, workers := range []int{1, 3, 16} {
		report, err := NewScanner(testConfig(workers), zap.NewNop()).Scan(context.Background(), root)
		require.NoError(t, err)

		data, err := json.Marshal(report)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}

	for i := 1; i < len(outputs); i++ {
		assert.Equal(t, string(outputs[0]), string(outputs[i]), "report depends on worker count")
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	report, err := NewScanner(testConfig(2), zap.NewNop()).Scan(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0, report.FileCount)
	assert.Empty(t, report.WorkSessions)
	assert.Empty(t, report.NamingTally.DominantConvention)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"duplicate_groups", "near_duplicate_pairs", "version_clusters", "work_sessions"} {
		assert.Equal(t, "[]", string(raw[key]), key)
	}
	for _, key := range []string{"directory_purposes", "classification_results"} {
		assert.Equal(t, "{}", string(raw[key]), key)
	}
}

func TestScanInvalidRoot(t *testing.T) {
	_, err := NewScanner(testConfig(1), zap.NewNop()).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var rootErr *filesystem.InvalidRootError
	assert.True(t, errors.As(err, &rootErr))
}

func TestScanCancelled(t *testing.T) {
	root := buildFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewScanner(testConfig(2), zap.NewNop()).Scan(ctx, root)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanBadRulesPath(t *testing.T) {
	cfg := testConfig(1)
	cfg.RulesPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewScanner(cfg, zap.NewNop()).Scan(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "failed to initialize classifier")
}

func TestScanProgress(t *testing.T) {
	root := buildFixture(t)

	var mu sync.Mutex
	phases := make(map[string]bool)

	s := NewScanner(testConfig(2), zap.NewNop())
	s.SetProgressCallback(func(phase string, current, total int, message string) {
		mu.Lock()
		phases[phase] = true
		mu.Unlock()
	})

	_, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	for _, phase := range []string{"walking", "hashing", "classifying", "analyzing"} {
		assert.True(t, phases[phase], "missing progress phase %s", phase)
	}
}

func TestScanOversizeSkipped(t *testing.T) {
	root := buildFixture(t)

	cfg := testConfig(2)
	cfg.MaxSize = "20"

	report, err := NewScanner(cfg, zap.NewNop()).Scan(context.Background(), root)
	require.NoError(t, err)

	// guide.md and both reports are above 20 bytes
	assert.Equal(t, 3, report.OversizeSkipped)
	assert.Equal(t, 3, report.FilesHashed)
	_, ok := report.ClassificationResults["notes/guide.md"]
	assert.False(t, ok)
}
