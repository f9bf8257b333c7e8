package report

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/internal/naming"
	"github.com/IvanShishkin/treelens/pkg/models"
)

const htmlStyle = `
        :root {
            --bg-primary: #0C0C0C;
            --bg-secondary: #161616;
            --text-primary: #ECECEC;
            --text-secondary: #A0A0A0;
            --accent: #D97706;
            --border-color: #2A2A2A;
            --good: #22C55E;
            --warn: #EAB308;
            --bad: #EF4444;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            padding: 32px 24px;
            line-height: 1.5;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 { color: var(--accent); font-size: 32px; margin-bottom: 4px; }
        h2 { font-size: 20px; margin: 32px 0 12px; }
        .subtitle { color: var(--text-secondary); }
        .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; margin-top: 24px; }
        .card { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 8px; padding: 16px; }
        .card .value { font-size: 24px; font-weight: 700; }
        .card .label { color: var(--text-secondary); font-size: 13px; }
        table { width: 100%; border-collapse: collapse; background: var(--bg-secondary); }
        th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid var(--border-color); font-size: 14px; }
        th { color: var(--text-secondary); font-weight: 500; }
        code { font-family: 'JetBrains Mono', monospace; font-size: 13px; }
        .insight { background: var(--bg-secondary); border-left: 3px solid var(--accent); padding: 16px; white-space: pre-wrap; }
        .good { color: var(--good); } .warn { color: var(--warn); } .bad { color: var(--bad); }
`

// generateHTML generates an HTML report
func (g *Generator) generateHTML(env *models.ReportEnvelope, outputFile string) error {
	r := env.Report
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Treelens Scan Report</title>
    <style>`)
	sb.WriteString(htmlStyle)
	sb.WriteString(`    </style>
</head>
<body>
<div class="container">
`)

	sb.WriteString(fmt.Sprintf("<h1>Treelens</h1>\n<p class=\"subtitle\">%s &middot; %s &middot; v%s</p>\n",
		esc(env.Root), env.GeneratedAt.Format("2006-01-02 15:04:05"), esc(env.Version)))

	// Summary cards
	sb.WriteString(`<div class="cards">` + "\n")
	card(&sb, fmt.Sprintf("%d", r.FileCount), "Files", "")
	card(&sb, fmt.Sprintf("%d", r.DirectoryCount), "Directories", "")
	card(&sb, filesystem.FormatSize(r.TotalSizeBytes), "Total size", "")
	card(&sb, fmt.Sprintf("%d", len(r.DuplicateGroups)), "Duplicate groups", statusClass(len(r.DuplicateGroups) == 0))
	card(&sb, filesystem.FormatSize(r.TotalWastedBytes()), "Wasted", statusClass(r.TotalWastedBytes() == 0))
	card(&sb, fmt.Sprintf("%d", len(r.WorkSessions)), "Work sessions", "")
	card(&sb, fmt.Sprintf("%.0f", r.Insights.Health.Score), "Health score", statusClass(r.Insights.Health.Score >= 80))
	card(&sb, FormatDuration(time.Duration(env.DurationMs)*time.Millisecond), "Duration", "")
	sb.WriteString("</div>\n")

	if env.Insight != "" {
		sb.WriteString("<h2>AI Commentary</h2>\n")
		sb.WriteString(fmt.Sprintf("<div class=\"insight\">%s</div>\n", esc(env.Insight)))
	}

	// Duplicates
	if len(r.DuplicateGroups) > 0 {
		sb.WriteString("<h2>Exact Duplicates</h2>\n")
		rows := make([][]string, 0, len(r.DuplicateGroups))
		for _, group := range r.DuplicateGroups {
			rows = append(rows, []string{
				code(group.ContentHash),
				esc(filesystem.FormatSize(group.SizeBytes)),
				esc(filesystem.FormatSize(group.WastedBytes)),
				codeJoin(group.Members),
			})
		}
		table(&sb, []string{"Hash", "Size", "Wasted", "Files"}, rows)
	}

	if len(r.NearDuplicatePairs) > 0 {
		sb.WriteString("<h2>Similar File Names</h2>\n")
		rows := make([][]string, 0, len(r.NearDuplicatePairs))
		for _, pair := range r.NearDuplicatePairs {
			rows = append(rows, []string{code(pair.NameA), code(pair.NameB), fmt.Sprintf("%.1f%%", pair.Similarity*100)})
		}
		table(&sb, []string{"Name A", "Name B", "Similarity"}, rows)
	}

	if len(r.VersionClusters) > 0 {
		sb.WriteString("<h2>Version Clusters</h2>\n")
		rows := make([][]string, 0, len(r.VersionClusters))
		for _, cluster := range r.VersionClusters {
			names := make([]string, len(cluster.Versions))
			for i, v := range cluster.Versions {
				names[i] = v.Name
			}
			rows = append(rows, []string{code(cluster.BaseName), codeJoin(names)})
		}
		table(&sb, []string{"Base", "Versions"}, rows)
	}

	if len(r.WorkSessions) > 0 {
		sb.WriteString("<h2>Work Sessions</h2>\n")
		rows := make([][]string, 0, len(r.WorkSessions))
		for _, s := range r.WorkSessions {
			rows = append(rows, []string{
				s.StartTime.Format("2006-01-02 15:04"),
				s.EndTime.Format("2006-01-02 15:04"),
				fmt.Sprintf("%d", s.FileCount),
				fmt.Sprintf("%.1f", s.DurationMinutes),
				codeJoin(s.SamplePaths),
			})
		}
		table(&sb, []string{"Start", "End", "Files", "Minutes", "Sample"}, rows)
	}

	// Structure
	sb.WriteString("<h2>Naming Conventions</h2>\n")
	rows := make([][]string, 0, 5)
	for _, name := range naming.Conventions() {
		rows = append(rows, []string{esc(name), fmt.Sprintf("%d", r.NamingTally.Counts[name]), codeJoin(r.NamingTally.Examples[name])})
	}
	table(&sb, []string{"Convention", "Count", "Examples"}, rows)

	if len(r.DirectoryPurposes) > 0 {
		sb.WriteString("<h2>Directory Purposes</h2>\n")
		rows = rows[:0]
		for _, path := range sortedKeys(r.DirectoryPurposes) {
			p := r.DirectoryPurposes[path]
			rows = append(rows, []string{code(path), esc(p.Purpose), code(p.MatchedKeyword), esc(p.Priority), fmt.Sprintf("%d", p.FileCount)})
		}
		table(&sb, []string{"Directory", "Purpose", "Keyword", "Priority", "Files"}, rows)
	}

	if len(r.ClassificationResults) > 0 {
		sb.WriteString("<h2>Document Classification</h2>\n")
		rows = rows[:0]
		for _, path := range sortedKeys(r.ClassificationResults) {
			c := r.ClassificationResults[path]
			rows = append(rows, []string{code(path), esc(c.Category), fmt.Sprintf("%.2f", c.Confidence), esc(strings.Join(c.MatchedSignals, ", "))})
		}
		table(&sb, []string{"File", "Category", "Confidence", "Signals"}, rows)
	}

	if len(r.Insights.Consolidation) > 0 {
		sb.WriteString("<h2>Consolidation Opportunities</h2>\n")
		rows = rows[:0]
		for _, hint := range r.Insights.Consolidation {
			rows = append(rows, []string{esc(hint.Action), fmt.Sprintf("%d", hint.Count), codeJoin(hint.Paths)})
		}
		table(&sb, []string{"Action", "Count", "Paths"}, rows)
	}

	sb.WriteString("</div>\n</body>\n</html>\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

func esc(s string) string {
	return html.EscapeString(s)
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "<code>" + esc(s) + "</code>"
}

func codeJoin(items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = code(item)
	}
	return strings.Join(parts, "<br>")
}

// statusClass maps a good/bad condition to a CSS class
func statusClass(ok bool) string {
	if ok {
		return "good"
	}
	return "warn"
}

func card(sb *strings.Builder, value, label, class string) {
	sb.WriteString(fmt.Sprintf("  <div class=\"card\"><div class=\"value %s\">%s</div><div class=\"label\">%s</div></div>\n",
		class, esc(value), esc(label)))
}

// table writes a table; cells must already be escaped
func table(sb *strings.Builder, headers []string, rows [][]string) {
	sb.WriteString("<table>\n<thead><tr>")
	for _, h := range headers {
		sb.WriteString("<th>" + esc(h) + "</th>")
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>" + cell + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}
