package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/PuerkitoBio/goquery"
)

var (
	todoRe  = regexp.MustCompile(`\b(TODO|FIXME)\b`)
	linkRe  = regexp.MustCompile(`https?://[^\s)>\]"']+`)
	spaceRe = regexp.MustCompile(`[ \t]+`)
	blankRe = regexp.MustCompile(`\n\s*\n+`)
)

func isMarkdown(extension string) bool {
	return extension == "md" || extension == "markdown"
}

func isHTML(extension string) bool {
	return extension == "html" || extension == "htm"
}

// ExtractText returns the text to classify. HTML is reduced to its visible text.
func ExtractText(extension, content string) (string, error) {
	if !isHTML(extension) {
		return content, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	text := spaceRe.ReplaceAllString(doc.Text(), " ")
	text = blankRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text), nil
}

func collectStats(text string) *models.TextStats {
	stats := &models.TextStats{
		Words:    len(strings.Fields(text)),
		Headings: len(findHeadings(strings.Split(text, "\n"))),
		Todos:    len(todoRe.FindAllStringIndex(text, -1)),
		Links:    len(linkRe.FindAllStringIndex(text, -1)),
	}
	if text != "" {
		stats.Lines = strings.Count(text, "\n") + 1
		if strings.HasSuffix(text, "\n") {
			stats.Lines--
		}
	}
	return stats
}
