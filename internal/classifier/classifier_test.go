package classifier

import (
	"strings"
	"testing"

	"github.com/IvanShishkin/treelens/pkg/models"
)

func testRules() []Rule {
	return []Rule{
		{Category: "testing", Keywords: []string{"test", "assert", "mock", "fixture"}},
		{Category: "documentation", Keywords: []string{"guide", "usage"}},
		{Category: "configuration", Keywords: []string{"config", "port"}},
	}
}

func TestClassify(t *testing.T) {
	c, err := New(testRules())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name       string
		text       string
		category   string
		confidence float64
		signals    []string
	}{
		{"No match", "nothing relevant here", models.CategoryUnknown, 0, []string{}},
		{"Empty text", "", models.CategoryUnknown, 0, []string{}},
		{"Single testing keyword", "we ASSERT things", "testing", 0.25, []string{"assert"}},
		{"Documentation stronger by ratio", "guide and test", "documentation", 0.5, []string{"guide"}},
		{"Full match", "Usage GUIDE", "documentation", 1, []string{"guide", "usage"}},
		// testing 2/4 == documentation 1/2 == configuration 1/2, first declared wins
		{"Tie goes to first declared", "test mock guide port", "testing", 0.5, []string{"test", "mock"}},
		// documentation 1/2 == configuration 1/2
		{"Tie between later rules", "guide port", "documentation", 0.5, []string{"guide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.Category != tt.category {
				t.Errorf("Category = %q, want %q", got.Category, tt.category)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.confidence)
			}
			if strings.Join(got.MatchedSignals, ",") != strings.Join(tt.signals, ",") {
				t.Errorf("MatchedSignals = %v, want %v", got.MatchedSignals, tt.signals)
			}
			if got.MatchedSignals == nil {
				t.Error("MatchedSignals should never be nil")
			}
			if len(got.Scores) != 3 {
				t.Errorf("Scores has %d entries, want one per rule", len(got.Scores))
			}
		})
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c, _ := New(DefaultRules())
	texts := []string{
		"",
		"# Overview\nThis guide explains usage.",
		"```go\nfunc main() { return }\n```",
		"The system MUST satisfy every requirement and invariant.",
		"test assert mock fixture coverage e2e regression test case",
	}

	for _, text := range texts {
		got := c.Classify(text)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Classify(%q) confidence %v out of range", text, got.Confidence)
		}
		if got.Confidence == 0 && got.Category != models.CategoryUnknown {
			t.Errorf("Classify(%q) = %q with zero confidence", text, got.Category)
		}
		if got.Confidence > 0 && got.Category == models.CategoryUnknown {
			t.Errorf("Classify(%q) unknown with confidence %v", text, got.Confidence)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"Empty table", nil},
		{"Empty category", []Rule{{Category: "", Keywords: []string{"a"}}}},
		{"Reserved category", []Rule{{Category: "unknown", Keywords: []string{"a"}}}},
		{"Duplicate category", []Rule{{Category: "a", Keywords: []string{"x"}}, {Category: "a", Keywords: []string{"y"}}}},
		{"No keywords", []Rule{{Category: "a", Keywords: []string{"", ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.rules); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

func TestNewDeduplicatesKeywords(t *testing.T) {
	c, err := New([]Rule{{Category: "testing", Keywords: []string{"Test", "test", "TEST", "mock"}}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rules := c.Rules()
	if len(rules[0].Keywords) != 2 || rules[0].Keywords[0] != "Test" {
		t.Errorf("Keywords = %v, want [Test mock]", rules[0].Keywords)
	}

	got := c.Classify("a test")
	if got.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", got.Confidence)
	}
}

func TestClassifyDocumentSections(t *testing.T) {
	c, _ := New(testRules())
	doc := "# Setup\nSet the port in the config file.\n\n# Checks\nEvery test uses a mock.\n"

	got, err := c.ClassifyDocument("md", doc, true)
	if err != nil {
		t.Fatalf("ClassifyDocument() error = %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(got.Sections))
	}
	if got.Sections[0].Category != "configuration" || got.Sections[0].Line != 1 {
		t.Errorf("Sections[0] = %+v", got.Sections[0])
	}
	if got.Sections[1].Category != "testing" || got.Sections[1].Line != 4 {
		t.Errorf("Sections[1] = %+v", got.Sections[1])
	}
	if got.Stats == nil || got.Stats.Headings != 2 || got.Stats.Lines != 5 {
		t.Errorf("Stats = %+v", got.Stats)
	}

	plain, _ := c.ClassifyDocument("md", doc, false)
	if len(plain.Sections) != 0 {
		t.Error("sections returned without being requested")
	}
}

func TestClassifyDocumentHTML(t *testing.T) {
	c, _ := New(testRules())
	page := `<html><head><style>.guide{}</style><script>var usage = 1;</script></head>
<body><h1>Config</h1><p>Listen port 8080</p></body></html>`

	got, err := c.ClassifyDocument("html", page, true)
	if err != nil {
		t.Fatalf("ClassifyDocument() error = %v", err)
	}
	// script and style text must not count
	if got.Category != "configuration" || got.Confidence != 1 {
		t.Errorf("got %q/%v, want configuration/1", got.Category, got.Confidence)
	}
	if len(got.Sections) != 0 {
		t.Error("HTML documents should not produce markdown sections")
	}
}
