package models

// ProjectInsights holds whole-project observations derived from the inventory
type ProjectInsights struct {
	ProjectType      string              `json:"project_type"`
	TechStack        TechStack           `json:"tech_stack"`
	Health           HealthReport        `json:"health"`
	Consolidation    []ConsolidationHint `json:"consolidation"`
	ShannonDiversity float64             `json:"shannon_diversity"`
}

// TechStack lists detected languages and package manager indicators
type TechStack struct {
	Languages            map[string]int     `json:"languages"`
	LanguageDistribution map[string]float64 `json:"language_distribution"` // percent of recognised files
	PackageManagers      []Indicator        `json:"package_managers"`
}

// Indicator is a marker file and where it was found
type Indicator struct {
	Name  string   `json:"name"`
	File  string   `json:"file"`
	Paths []string `json:"paths"`
}

// HealthReport summarizes root-level project hygiene
type HealthReport struct {
	Score      float64           `json:"score"`
	HasReadme  bool              `json:"has_readme"`
	HasLicense bool              `json:"has_license"`
	HasGit     bool              `json:"has_git"`
	HasCI      bool              `json:"has_ci"`
	Evidence   map[string]string `json:"evidence,omitempty"` // indicator -> path that proved it
	GitBranch  string            `json:"git_branch,omitempty"`
	GitHead    string            `json:"git_head,omitempty"`
}

// Consolidation hint types
const (
	HintExactDuplicate   = "exact_duplicate"
	HintVersionFiles     = "version_files"
	HintEmptyDirectories = "empty_directories"
	HintScatteredReadmes = "scattered_documentation"
)

// ConsolidationHint suggests a cleanup action backed by concrete paths
type ConsolidationHint struct {
	Type       string   `json:"type"`
	Action     string   `json:"action"`
	Paths      []string `json:"paths"`
	Count      int      `json:"count"`
	SavedBytes int64    `json:"saved_bytes,omitempty"`
}
