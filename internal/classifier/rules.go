package classifier

// Rule maps a category to the keywords that signal it.
// Rules are evaluated in declaration order; that order breaks ties.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultRules returns the built-in rule table for markdown and HTML documents
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: "testing",
			Keywords: []string{"test", "assert", "mock", "fixture", "coverage", "e2e", "regression", "test case"},
		},
		{
			Category: "documentation",
			Keywords: []string{"overview", "guide", "tutorial", "how to", "readme", "getting started", "usage", "example"},
		},
		{
			Category: "source_code",
			Keywords: []string{"func ", "function", "class ", "import ", "return ", "```", "def ", "const "},
		},
		{
			Category: "configuration",
			Keywords: []string{"config", "setting", "environment", "yaml", ".env", "port", "parameter", "default"},
		},
		{
			Category: "specification",
			Keywords: []string{"requirement", "must", "shall", "specification", "invariant", "acceptance criteria"},
		},
		{
			Category: "architecture",
			Keywords: []string{"architecture", "component", "diagram", "mermaid", "layer", "service", "data flow", "module"},
		},
	}
}
