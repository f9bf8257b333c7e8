package models

// CategoryUnknown is assigned when no rule matched
const CategoryUnknown = "unknown"

// ClassificationResult is the outcome of classifying one file or text section
type ClassificationResult struct {
	Category       string          `json:"category"`
	Confidence     float64         `json:"confidence"`
	MatchedSignals []string        `json:"matched_signals"`
	Scores         []CategoryScore `json:"scores,omitempty"`
	Sections       []SectionResult `json:"sections,omitempty"`
	Stats          *TextStats      `json:"stats,omitempty"`
}

// CategoryScore records how strongly one rule matched
type CategoryScore struct {
	Category string   `json:"category"`
	Matched  []string `json:"matched,omitempty"`
	Total    int      `json:"total"`
	Strength float64  `json:"strength"`
}

// SectionResult is the classification of a single markdown section
type SectionResult struct {
	Heading        string   `json:"heading"`
	Level          int      `json:"level"`
	Line           int      `json:"line"`
	Category       string   `json:"category"`
	Confidence     float64  `json:"confidence"`
	MatchedSignals []string `json:"matched_signals"`
}

// TextStats holds simple counters collected while classifying text
type TextStats struct {
	Lines    int `json:"lines"`
	Words    int `json:"words"`
	Headings int `json:"headings"`
	Todos    int `json:"todos"`
	Links    int `json:"links"`
}
