package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/internal/history"
	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func parseScanFlags(t *testing.T, cfg *config.Config, args ...string) {
	t.Helper()
	var flags scanFlags
	cmd := &cobra.Command{Use: "scan"}
	bindScanFlags(cmd, &flags)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	flags.apply(cfg, cmd.Flags().Changed)
}

func TestScanFlagsApply(t *testing.T) {
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	parseScanFlags(t, cfg, "--workers", "2", "--max-size", "10M", "--session-min-files", "5", "-r", "json", "--ai-model", "opus")

	if cfg.Workers != 2 || cfg.MaxSize != "10M" || cfg.SessionMinFiles != 5 {
		t.Errorf("apply() = workers %d, max size %s, min files %d", cfg.Workers, cfg.MaxSize, cfg.SessionMinFiles)
	}
	if cfg.ReportFormat != "json" || cfg.AI.Model != "opus" {
		t.Errorf("apply() = format %q, model %q", cfg.ReportFormat, cfg.AI.Model)
	}
	// Unset flags keep defaults
	if cfg.SessionGapHours != 4 || cfg.SimilarityThreshold != 0.85 {
		t.Errorf("apply() changed defaults: gap %v, similarity %v", cfg.SessionGapHours, cfg.SimilarityThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestScanFlagsOverrideWithZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treelens.yaml")
	content := "session_limit: 20\nclassify_sections: true\nai:\n  ai_enabled: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.SessionLimit != 20 || !cfg.ClassifySections || !cfg.AI.Enabled {
		t.Fatalf("config file not applied: %+v", cfg)
	}

	parseScanFlags(t, cfg, "--session-limit", "0", "--sections=false", "--ai=false")

	if cfg.SessionLimit != 0 {
		t.Errorf("SessionLimit = %d, want 0", cfg.SessionLimit)
	}
	if cfg.ClassifySections {
		t.Error("ClassifySections = true, want false")
	}
	if cfg.AI.Enabled {
		t.Error("AI.Enabled = true, want false")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		current, total int
		expected       string
	}{
		{0, 4, "░░░░"},
		{2, 4, "██░░"},
		{4, 4, "████"},
		{9, 4, "████"},
		{1, 0, "░░░░"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.current, tt.total, 4); got != tt.expected {
			t.Errorf("progressBar(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.expected)
		}
	}
}

func TestRunScan(t *testing.T) {
	logger = zap.NewNop()

	root := t.TempDir()
	for name, content := range map[string]string{
		"README.md":      "# Overview\n\nA getting started guide.",
		"notes.txt":      "same",
		"notes_copy.txt": "same",
	} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out := t.TempDir()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.ReportFormat = "json"
	cfg.OutputFile = filepath.Join(out, "report.json")
	cfg.HistoryDB = filepath.Join(out, "history.db")
	cfg.MetricsFile = filepath.Join(out, "treelens.prom")

	if err := runScan(context.Background(), cfg, root); err != nil {
		t.Fatalf("runScan() error = %v", err)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	var env models.ReportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if env.Tool != "treelens" || env.Report.FileCount != 3 || len(env.Report.DuplicateGroups) != 1 {
		t.Errorf("report = tool %q, files %d, groups %d", env.Tool, env.Report.FileCount, len(env.Report.DuplicateGroups))
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	latest, err := store.Latest(env.Root)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.FileCount != 3 {
		t.Errorf("history FileCount = %d, want 3", latest.FileCount)
	}

	prom, err := os.ReadFile(cfg.MetricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), "treelens_files 3") {
		t.Errorf("metrics missing file gauge:\n%s", prom)
	}
}

func TestRunScanInvalidRoot(t *testing.T) {
	logger = zap.NewNop()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := runScan(context.Background(), cfg, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("runScan() expected error for missing root")
	}
}
