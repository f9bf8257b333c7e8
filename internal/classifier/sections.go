package classifier

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)[ \t#]*$`)

// Section is a markdown heading and the text that belongs to it.
// Body runs until the next heading of the same or a higher level.
type Section struct {
	Heading string
	Level   int
	Line    int // 1-based line of the heading
	Body    string
}

type heading struct {
	title string
	level int
	line  int
}

// SplitSections splits markdown on ATX headings, ignoring fenced code blocks.
// Sections with an empty body are dropped.
func SplitSections(text string) []Section {
	lines := strings.Split(text, "\n")
	headings := findHeadings(lines)

	var sections []Section
	for i, h := range headings {
		end := len(lines)
		for _, next := range headings[i+1:] {
			if next.level <= h.level {
				end = next.line
				break
			}
		}

		body := strings.TrimSpace(strings.Join(lines[h.line+1:end], "\n"))
		if body == "" {
			continue
		}
		sections = append(sections, Section{
			Heading: h.title,
			Level:   h.level,
			Line:    h.line + 1,
			Body:    body,
		})
	}
	return sections
}

// findHeadings returns ATX headings outside ``` and ~~~ fences
func findHeadings(lines []string) []heading {
	var headings []heading
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			fence = "```"
			continue
		}
		if strings.HasPrefix(trimmed, "~~~") {
			fence = "~~~"
			continue
		}
		if m := headingRe.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			headings = append(headings, heading{title: m[2], level: len(m[1]), line: i})
		}
	}
	return headings
}
