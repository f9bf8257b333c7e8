package classifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
)

// Classifier scores text against an ordered rule table
type Classifier struct {
	rules   []Rule
	lowered [][]string
}

// New creates a classifier. Keywords are de-duplicated case-insensitively,
// keeping the first spelling.
func New(rules []Rule) (*Classifier, error) {
	if len(rules) == 0 {
		return nil, errors.New("no classification rules")
	}

	c := &Classifier{}
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.Category == "" {
			return nil, errors.New("rule with empty category")
		}
		if r.Category == models.CategoryUnknown {
			return nil, fmt.Errorf("category %q is reserved", r.Category)
		}
		if seen[r.Category] {
			return nil, fmt.Errorf("duplicate category %q", r.Category)
		}
		seen[r.Category] = true

		var keywords, lowered []string
		dup := make(map[string]bool)
		for _, kw := range r.Keywords {
			l := strings.ToLower(kw)
			if l == "" || dup[l] {
				continue
			}
			dup[l] = true
			keywords = append(keywords, kw)
			lowered = append(lowered, l)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", r.Category)
		}

		c.rules = append(c.rules, Rule{Category: r.Category, Keywords: keywords})
		c.lowered = append(c.lowered, lowered)
	}
	return c, nil
}

// Rules returns the normalized rule table
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Classify returns the category whose keyword set matches the largest share
// of its keywords. Ties go to the earlier rule; no match yields "unknown".
func (c *Classifier) Classify(text string) models.ClassificationResult {
	lower := strings.ToLower(text)

	result := models.ClassificationResult{
		Category:       models.CategoryUnknown,
		MatchedSignals: []string{},
		Scores:         make([]models.CategoryScore, 0, len(c.rules)),
	}

	best := -1
	var bestStrength float64
	for i, rule := range c.rules {
		var matched []string
		for j, kw := range c.lowered[i] {
			if strings.Contains(lower, kw) {
				matched = append(matched, rule.Keywords[j])
			}
		}

		strength := float64(len(matched)) / float64(len(rule.Keywords))
		result.Scores = append(result.Scores, models.CategoryScore{
			Category: rule.Category,
			Matched:  matched,
			Total:    len(rule.Keywords),
			Strength: strength,
		})

		if strength > bestStrength {
			best = i
			bestStrength = strength
		}
	}

	if best >= 0 {
		result.Category = c.rules[best].Category
		result.Confidence = bestStrength
		result.MatchedSignals = result.Scores[best].Matched
	}
	return result
}

// ClassifyDocument extracts text by extension, classifies it and collects stats.
// With sections enabled, markdown headings are classified individually.
func (c *Classifier) ClassifyDocument(extension, content string, sections bool) (models.ClassificationResult, error) {
	text, err := ExtractText(extension, content)
	if err != nil {
		return models.ClassificationResult{}, err
	}

	result := c.Classify(text)
	result.Stats = collectStats(text)

	if sections && isMarkdown(extension) {
		for _, s := range SplitSections(text) {
			sr := c.Classify(s.Heading + "\n" + s.Body)
			result.Sections = append(result.Sections, models.SectionResult{
				Heading:        s.Heading,
				Level:          s.Level,
				Line:           s.Line,
				Category:       sr.Category,
				Confidence:     sr.Confidence,
				MatchedSignals: sr.MatchedSignals,
			})
		}
	}
	return result, nil
}
