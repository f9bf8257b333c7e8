package naming

import (
	"regexp"
	"sort"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
)

const (
	maxExamples = 5
	maxTokens   = 10
)

type convention struct {
	name string
	re   *regexp.Regexp
}

// Evaluated in this order; the first match wins
var conventions = []convention{
	{models.ConventionCamel, regexp.MustCompile(`^[a-z]+([A-Z][a-z]+)+$`)},
	{models.ConventionSnake, regexp.MustCompile(`^[a-z]+(_[a-z]+)+$`)},
	{models.ConventionKebab, regexp.MustCompile(`^[a-z]+(-[a-z]+)+$`)},
	{models.ConventionPascal, regexp.MustCompile(`^[A-Z][a-z]+([A-Z][a-z]+)+$`)},
	{models.ConventionScreamingSnake, regexp.MustCompile(`^[A-Z]+(_[A-Z]+)+$`)},
}

// Conventions returns the convention names in tie-break order
func Conventions() []string {
	names := make([]string, len(conventions))
	for i, c := range conventions {
		names[i] = c.name
	}
	return names
}

// Classify returns the convention an identifier follows, if any
func Classify(identifier string) (string, bool) {
	for _, c := range conventions {
		if c.re.MatchString(identifier) {
			return c.name, true
		}
	}
	return "", false
}

// Identifiers collects directory names and file stems, directories first
func Identifiers(files []models.FileRecord, dirs []models.DirRecord) []string {
	ids := make([]string, 0, len(files)+len(dirs))
	for _, d := range dirs {
		ids = append(ids, d.Name)
	}
	for i := range files {
		ids = append(ids, files[i].Stem())
	}
	return ids
}

// Analyze tallies naming conventions. Identifiers that match no convention
// are left out of the counts. The dominant convention is empty when nothing matched.
func Analyze(identifiers []string) models.NamingConventionTally {
	tally := models.NamingConventionTally{
		Counts:   make(map[string]int, len(conventions)),
		Examples: make(map[string][]string),
	}
	for _, c := range conventions {
		tally.Counts[c.name] = 0
	}

	prefixes := make(map[string]int)
	suffixes := make(map[string]int)

	for _, id := range identifiers {
		if name, ok := Classify(id); ok {
			tally.Counts[name]++
			if len(tally.Examples[name]) < maxExamples {
				tally.Examples[name] = append(tally.Examples[name], id)
			}
		}

		if parts := strings.Split(id, "_"); len(parts) > 1 {
			if parts[0] != "" {
				prefixes[parts[0]]++
			}
			if last := parts[len(parts)-1]; last != "" {
				suffixes[last]++
			}
		}
	}

	best := 0
	for _, c := range conventions {
		if n := tally.Counts[c.name]; n > best {
			best = n
			tally.DominantConvention = c.name
		}
	}

	tally.CommonPrefixes = topTokens(prefixes)
	tally.CommonSuffixes = topTokens(suffixes)
	return tally
}

// topTokens returns the most frequent tokens, count desc then token asc
func topTokens(counts map[string]int) []models.TokenCount {
	tokens := make([]models.TokenCount, 0, len(counts))
	for token, n := range counts {
		tokens = append(tokens, models.TokenCount{Token: token, Count: n})
	}
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Count != tokens[j].Count {
			return tokens[i].Count > tokens[j].Count
		}
		return tokens[i].Token < tokens[j].Token
	})
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}
	return tokens
}
