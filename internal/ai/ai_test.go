package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
)

func TestMapModelName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"haiku", "claude-3-5-haiku-latest"},
		{"Sonnet", "claude-sonnet-4-20250514"},
		{"opus", "claude-opus-4-20250514"},
		{"unknown", "claude-sonnet-4-20250514"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapModelName(tt.name); got != tt.expected {
				t.Errorf("mapModelName(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", `{"summary":"ok"}`, `{"summary":"ok"}`},
		{"Code block", "```json\n{\"summary\":\"ok\"}\n```", `{"summary":"ok"}`},
		{"Surrounding text", `Here you go: {"summary":"ok"} done`, `{"summary":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseCommentary(t *testing.T) {
	c, err := parseCommentary(`{"summary":"Tidy project.","recommendations":["Remove copies","Add a LICENSE"]}`)
	if err != nil {
		t.Fatalf("parseCommentary() error = %v", err)
	}
	want := "Tidy project.\n\n- Remove copies\n- Add a LICENSE"
	if got := c.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	c, err = parseCommentary("The project looks fine.")
	if err != nil || c.Summary != "The project looks fine." {
		t.Errorf("parseCommentary(plain) = %+v, %v", c, err)
	}

	if _, err := parseCommentary(`{"other": 1}`); err == nil {
		t.Error("parseCommentary() expected error for empty answer")
	}
	if _, err := parseCommentary(`{"summary": }`); err == nil {
		t.Error("parseCommentary() expected error for broken JSON")
	}
}

func TestBuildDigest(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	report := &models.ScanReport{
		FileCount: 10,
		DuplicateGroups: []models.DuplicateGroup{
			{Members: []string{"a", "b", "c", "d"}, SizeBytes: 10, WastedBytes: 30},
		},
		VersionClusters: []models.VersionCluster{{BaseName: "z.md"}, {BaseName: "a.md"}},
		ClassificationResults: map[string]models.ClassificationResult{
			"x.md": {Category: "documentation"},
			"y.md": {Category: "documentation"},
			"z.md": {Category: "testing"},
		},
	}
	for i := 0; i < 5; i++ {
		report.WorkSessions = append(report.WorkSessions, models.WorkSession{StartTime: start, FileCount: 3})
	}

	d := BuildDigest(report)
	if len(d.TopDuplicates) != 1 || len(d.TopDuplicates[0].Files) != 3 || d.TopDuplicates[0].Copies != 4 {
		t.Errorf("TopDuplicates = %+v", d.TopDuplicates)
	}
	if len(d.RecentSessions) != 3 || d.WorkSessions != 5 {
		t.Errorf("RecentSessions = %d, WorkSessions = %d", len(d.RecentSessions), d.WorkSessions)
	}
	if d.DocumentTypes["documentation"] != 2 || d.DocumentTypes["testing"] != 1 {
		t.Errorf("DocumentTypes = %v", d.DocumentTypes)
	}
	if strings.Join(d.VersionedFiles, ",") != "a.md,z.md" {
		t.Errorf("VersionedFiles = %v", d.VersionedFiles)
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	d := BuildDigest(&models.ScanReport{FileCount: 42})

	prompt, err := BuildSummaryPrompt(d, "ru")
	if err != nil {
		t.Fatalf("BuildSummaryPrompt() error = %v", err)
	}
	if !strings.Contains(prompt, `"files": 42`) {
		t.Errorf("prompt missing digest: %s", prompt)
	}
	if !strings.Contains(prompt, "Russian") {
		t.Error("prompt missing language instruction")
	}

	prompt, _ = BuildSummaryPrompt(d, "en")
	if strings.Contains(prompt, "IMPORTANT: Respond in") {
		t.Error("English prompt should not carry a language instruction")
	}
}

func TestEstimateCost(t *testing.T) {
	haiku := EstimateCost("claude-3-5-haiku-latest", 4000)
	opus := EstimateCost("claude-opus-4-20250514", 4000)

	if haiku.EstimatedTokens != 1000+350+600 {
		t.Errorf("EstimatedTokens = %d", haiku.EstimatedTokens)
	}
	if haiku.EstimatedCostUSD >= opus.EstimatedCostUSD {
		t.Errorf("haiku cost %f should be below opus cost %f", haiku.EstimatedCostUSD, opus.EstimatedCostUSD)
	}
}

func TestNewSummarizer(t *testing.T) {
	logger := zap.NewNop()

	s, err := NewSummarizer(&config.AIConfig{Enabled: false}, logger)
	if err != nil {
		t.Fatalf("NewSummarizer() error = %v", err)
	}
	text, err := s.Summarize(context.Background(), &models.ScanReport{})
	if text != "" || err != nil {
		t.Errorf("Noop.Summarize() = %q, %v", text, err)
	}

	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewSummarizer(&config.AIConfig{Enabled: true, Model: "haiku"}, logger); err == nil {
		t.Error("NewSummarizer() expected error without API token")
	}

	s, err = NewSummarizer(&config.AIConfig{Enabled: true, Model: "haiku", APIToken: "test-token"}, logger)
	if err != nil {
		t.Fatalf("NewSummarizer() error = %v", err)
	}
	if a, ok := s.(*Analyzer); !ok || a.client.GetModel() != "claude-3-5-haiku-latest" {
		t.Errorf("NewSummarizer() = %T", s)
	}
}
