package models

// Naming convention names, in tie-break order
const (
	ConventionCamel          = "camelCase"
	ConventionSnake          = "snake_case"
	ConventionKebab          = "kebab-case"
	ConventionPascal         = "PascalCase"
	ConventionScreamingSnake = "SCREAMING_SNAKE_CASE"
)

// NamingConventionTally aggregates identifier styles observed in a tree
type NamingConventionTally struct {
	Counts             map[string]int      `json:"counts"`
	DominantConvention string              `json:"dominant_convention"`
	Examples           map[string][]string `json:"examples,omitempty"`
	CommonPrefixes     []TokenCount        `json:"common_prefixes"`
	CommonSuffixes     []TokenCount        `json:"common_suffixes"`
}

// TokenCount is a name fragment with its occurrence count
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}
