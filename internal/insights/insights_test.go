package insights

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

func rec(relPath string) models.FileRecord {
	name := filepath.Base(relPath)
	ext := filepath.Ext(name)
	if ext != "" {
		ext = ext[1:]
	}
	return models.FileRecord{RelativePath: relPath, Name: name, Extension: ext}
}

func records(paths ...string) []models.FileRecord {
	files := make([]models.FileRecord, len(paths))
	for i, p := range paths {
		files[i] = rec(p)
	}
	return files
}

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(p), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDetectTechStack(t *testing.T) {
	files := records("main.go", "internal/util.go", "scripts/tool.py", "Cargo.toml", "web/package.json", "package.json", "notes.txt")

	stack := DetectTechStack(files)

	if stack.Languages["Go"] != 2 || stack.Languages["Python"] != 1 {
		t.Errorf("Languages = %v", stack.Languages)
	}
	if got := stack.LanguageDistribution["Go"]; got <= stack.LanguageDistribution["Python"] {
		t.Errorf("LanguageDistribution = %v", stack.LanguageDistribution)
	}
	if _, ok := stack.Languages["plaintext"]; ok {
		t.Error("plain text should not count as a language")
	}

	if len(stack.PackageManagers) != 2 {
		t.Fatalf("PackageManagers = %+v", stack.PackageManagers)
	}
	npm := stack.PackageManagers[0]
	if npm.Name != "Node.js/npm" || len(npm.Paths) != 2 || npm.Paths[0] != "package.json" {
		t.Errorf("PackageManagers[0] = %+v", npm)
	}
	if stack.PackageManagers[1].Name != "Rust/Cargo" {
		t.Errorf("PackageManagers[1] = %+v", stack.PackageManagers[1])
	}
}

func TestDetectLanguageFallback(t *testing.T) {
	f := rec("weird.rs")
	f.Name = "weird.unknownext"
	f.Extension = "rs"
	if got := DetectLanguage(&f); got != "Rust" {
		t.Errorf("DetectLanguage() = %q, want Rust", got)
	}

	f = rec("data.zzz")
	if got := DetectLanguage(&f); got != "" {
		t.Errorf("DetectLanguage() = %q, want empty", got)
	}
}

func TestDetectProjectType(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{"Node", []string{"package.json", "go.mod"}, "web"},
		{"Python setup", []string{"setup.py"}, "python"},
		{"Go", []string{"go.mod", "main.go"}, "go"},
		{"Nested marker ignored", []string{"sub/go.mod", "a.cc"}, "cpp"},
		{"TypeScript", []string{"src/app.tsx", "src/app.js"}, "typescript"},
		{"JavaScript", []string{"index.js"}, "javascript"},
		{"Other", []string{"notes.md"}, "other"},
		{"Empty", nil, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectProjectType(records(tt.files...)); got != tt.expected {
				t.Errorf("DetectProjectType() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestShannonDiversity(t *testing.T) {
	tests := []struct {
		name     string
		counts   map[string]int
		expected float64
	}{
		{"Empty", nil, 0},
		{"Single", map[string]int{"md": 10}, 0},
		{"Two even", map[string]int{"md": 5, "go": 5}, 0.6931},
		{"Four even", map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, 1.3863},
		{"Zero ignored", map[string]int{"md": 3, "go": 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShannonDiversity(tt.counts); got != tt.expected {
				t.Errorf("ShannonDiversity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	t.Run("Well kept", func(t *testing.T) {
		root := t.TempDir()
		paths := []string{"README.md", "LICENSE", "go.mod", "main.go", "util.go", ".github/workflows/ci.yml"}
		writeFiles(t, root, paths...)

		report := a.Health(HealthInput{Root: root, Files: records(paths...)})
		if report.Score != 100 {
			t.Errorf("Score = %v, want 100", report.Score)
		}
		if !report.HasReadme || !report.HasLicense || !report.HasCI || report.HasGit {
			t.Errorf("report = %+v", report)
		}
		if report.Evidence["ci"] != ".github" || report.Evidence["package_manager"] != "go.mod" {
			t.Errorf("Evidence = %v", report.Evidence)
		}
	})

	t.Run("Readme only", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "README.md")

		// 50 + 15 readme + 10 docs - 15 tiny
		report := a.Health(HealthInput{Root: root, Files: records("README.md")})
		if report.Score != 60 {
			t.Errorf("Score = %v, want 60", report.Score)
		}
	})

	t.Run("Penalties clamp at zero", func(t *testing.T) {
		report := a.Health(HealthInput{
			Root:              t.TempDir(),
			InaccessibleCount: 11,
			MalformedCount:    6,
			TotalSizeBytes:    2 * oneGB,
		})
		if report.Score != 0 {
			t.Errorf("Score = %v, want 0", report.Score)
		}
	})
}

func TestHealthGit(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "README.md")

	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatal(err)
	}

	a := NewAnalyzer(zap.NewNop())

	// Unborn HEAD still counts as a repository
	report := a.Health(HealthInput{Root: root, Files: records("README.md")})
	if !report.HasGit || report.GitHead != "" {
		t.Errorf("report = %+v", report)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatal(err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}

	report = a.Health(HealthInput{Root: root, Files: records("README.md")})
	if report.GitBranch == "" || len(report.GitHead) != 7 {
		t.Errorf("GitBranch = %q, GitHead = %q", report.GitBranch, report.GitHead)
	}
}

func TestConsolidation(t *testing.T) {
	empty := make([]string, 12)
	for i := range empty {
		empty[i] = filepath.ToSlash(filepath.Join("empty", string(rune('a'+i))))
	}

	hints := Consolidation(ConsolidationInput{
		Files: records("README.md", "a/README.md", "b/readme.txt", "c/README", "d/main.go"),
		DuplicateGroups: []models.DuplicateGroup{
			{ContentHash: "x", Members: []string{"a.txt", "b.txt"}, SizeBytes: 5, WastedBytes: 5},
		},
		VersionClusters: []models.VersionCluster{{
			BaseName:  "report.md",
			BasePaths: []string{"report.md"},
			Versions:  []models.VersionedFile{{Name: "report_v2.md", Pattern: "_v\\d+", Paths: []string{"report_v2.md"}}},
		}},
		EmptyDirectories: empty,
	})

	if len(hints) != 4 {
		t.Fatalf("got %d hints: %+v", len(hints), hints)
	}

	wantTypes := []string{models.HintExactDuplicate, models.HintVersionFiles, models.HintEmptyDirectories, models.HintScatteredReadmes}
	for i, typ := range wantTypes {
		if hints[i].Type != typ {
			t.Errorf("hints[%d].Type = %s, want %s", i, hints[i].Type, typ)
		}
	}

	if hints[0].SavedBytes != 5 {
		t.Errorf("SavedBytes = %d", hints[0].SavedBytes)
	}
	if len(hints[1].Paths) != 2 {
		t.Errorf("version paths = %v", hints[1].Paths)
	}
	if hints[2].Count != 12 || len(hints[2].Paths) != 10 {
		t.Errorf("empty dirs hint = %+v", hints[2])
	}
	if hints[3].Count != 4 {
		t.Errorf("readme hint = %+v", hints[3])
	}
}

func TestConsolidationNothing(t *testing.T) {
	hints := Consolidation(ConsolidationInput{Files: records("README.md")})
	if hints == nil || len(hints) != 0 {
		t.Errorf("Consolidation() = %v, want empty", hints)
	}
}
