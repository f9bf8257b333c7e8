package purpose

import (
	"sort"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"

	// Source and test directories above this many direct files are flagged
	highPriorityFiles = 10
)

// Rule maps a purpose to the directory-name keywords that imply it
type Rule struct {
	Purpose  string
	Keywords []string
}

// DefaultRules returns the purpose table in match order
func DefaultRules() []Rule {
	return []Rule{
		{"testing", []string{"test", "tests", "__tests__", "spec", "specs", "e2e", "integration"}},
		{"documentation", []string{"docs", "documentation", "guides", "wiki", "examples"}},
		{"source_code", []string{"src", "lib", "app", "core", "components", "modules", "services"}},
		{"configuration", []string{"config", "conf", "settings", ".config"}},
		{"data", []string{"data", "datasets", "fixtures", "seeds"}},
		{"assets", []string{"assets", "static", "public", "resources", "images", "media"}},
		{"scripts", []string{"scripts", "bin", "tools", "utilities"}},
		{"build", []string{"build", "dist", "out", "target", "compiled"}},
		{"backup", []string{"backup", "backups", "archive", "archives", "old"}},
		{"temp", []string{"temp", "tmp", "cache", ".cache"}},
	}
}

// Result holds directory purposes for one scan
type Result struct {
	Purposes     map[string]models.DirectoryPurpose
	Distribution map[string]int
	HighPriority []models.PriorityDirectory
}

// Classifier infers directory purposes from their names
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over rules; nil means DefaultRules
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the first purpose with a keyword contained in the lowercased name
func (c *Classifier) Classify(name string) (purpose, keyword string) {
	lower := strings.ToLower(name)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Purpose, kw
			}
		}
	}
	return models.PurposeUnknown, ""
}

// Analyze classifies every directory record
func (c *Classifier) Analyze(dirs []models.DirRecord) *Result {
	res := &Result{
		Purposes:     make(map[string]models.DirectoryPurpose, len(dirs)),
		Distribution: make(map[string]int),
		HighPriority: []models.PriorityDirectory{},
	}

	for _, d := range dirs {
		p, kw := c.Classify(d.Name)
		res.Purposes[d.RelativePath] = models.DirectoryPurpose{
			Purpose:        p,
			MatchedKeyword: kw,
			Priority:       Priority(p),
			FileCount:      d.FileCount,
		}
		res.Distribution[p]++

		if (p == "source_code" || p == "testing") && d.FileCount > highPriorityFiles {
			res.HighPriority = append(res.HighPriority, models.PriorityDirectory{
				Directory: d.RelativePath,
				Purpose:   p,
				FileCount: d.FileCount,
			})
		}
	}

	sort.Slice(res.HighPriority, func(i, j int) bool {
		a, b := res.HighPriority[i], res.HighPriority[j]
		if a.FileCount != b.FileCount {
			return a.FileCount > b.FileCount
		}
		return a.Directory < b.Directory
	})

	return res
}

// Priority returns the review priority of a purpose
func Priority(purpose string) string {
	switch purpose {
	case "source_code", "testing", "documentation":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
