package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorOrange  = "\033[38;5;208m"
	colorGray    = "\033[38;5;245m"
)

const separator = "───────────────────────────────────────────────────────────────"

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator renders scan reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// SetOutput redirects the console summary
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Generate writes the report in the configured format and returns its absolute path.
// Without a format only the console summary is printed.
func (g *Generator) Generate(env *models.ReportEnvelope) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	if format == "" {
		g.PrintConsole(env)
		return "", nil
	}

	if outputFile == "" {
		timestamp := env.GeneratedAt.Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("TREELENS-REPORT-%s.json", timestamp)
		case "txt", "text":
			outputFile = fmt.Sprintf("TREELENS-REPORT-%s.txt", timestamp)
		case "html":
			outputFile = fmt.Sprintf("TREELENS-REPORT-%s.html", timestamp)
		case "md", "markdown":
			outputFile = fmt.Sprintf("TREELENS-REPORT-%s.md", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(env, outputFile)
	case "txt", "text":
		err = g.generateText(env, outputFile)
	case "html":
		err = g.generateHTML(env, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(env, outputFile)
	default:
		err = fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// PrintConsole prints a short colored summary
func (g *Generator) PrintConsole(env *models.ReportEnvelope) {
	r := env.Report
	w := g.out

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %sPath:%s        %s\n", colorGray, colorReset, env.Root)
	fmt.Fprintf(w, "  %sFiles:%s       %d (%s)\n", colorGray, colorReset, r.FileCount, filesystem.FormatSize(r.TotalSizeBytes))
	fmt.Fprintf(w, "  %sDirectories:%s %d\n", colorGray, colorReset, r.DirectoryCount)
	fmt.Fprintf(w, "  %sDuration:%s    %s\n", colorGray, colorReset, FormatDuration(time.Duration(env.DurationMs)*time.Millisecond))
	if r.InaccessibleCount > 0 || r.MalformedCount > 0 {
		fmt.Fprintf(w, "  %sSkipped:%s     %s%d inaccessible, %d malformed%s\n",
			colorGray, colorReset, colorYellow, r.InaccessibleCount, r.MalformedCount, colorReset)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, separator, colorReset)

	fmt.Fprintln(w)
	if len(r.DuplicateGroups) == 0 {
		fmt.Fprintf(w, "  %sNo duplicate files%s\n", colorGreen, colorReset)
	} else {
		fmt.Fprintf(w, "  %s%sDuplicates:%s  %d groups, %s wasted\n",
			colorBold, colorRed, colorReset, len(r.DuplicateGroups), filesystem.FormatSize(r.TotalWastedBytes()))
		for i, group := range r.DuplicateGroups {
			if i == 5 {
				fmt.Fprintf(w, "      %s... %d more%s\n", colorDim, len(r.DuplicateGroups)-5, colorReset)
				break
			}
			fmt.Fprintf(w, "      %s%s%s\n", colorOrange, strings.Join(group.Members, ", "), colorReset)
		}
	}
	fmt.Fprintf(w, "  %sSimilar names:%s   %d pairs\n", colorGray, colorReset, len(r.NearDuplicatePairs))
	fmt.Fprintf(w, "  %sVersion files:%s   %d clusters\n", colorGray, colorReset, len(r.VersionClusters))
	fmt.Fprintf(w, "  %sWork sessions:%s   %d\n", colorGray, colorReset, len(r.WorkSessions))
	if len(r.WorkSessions) > 0 {
		latest := r.WorkSessions[0]
		fmt.Fprintf(w, "      %slatest %s, %d files over %.0f min%s\n",
			colorDim, latest.StartTime.Format("2006-01-02 15:04"), latest.FileCount, latest.DurationMinutes, colorReset)
	}

	dominant := r.NamingTally.DominantConvention
	if dominant == "" {
		dominant = "none"
	}
	fmt.Fprintf(w, "  %sNaming:%s          %s\n", colorGray, colorReset, dominant)
	fmt.Fprintf(w, "  %sClassified:%s      %d documents\n", colorGray, colorReset, len(r.ClassificationResults))
	fmt.Fprintf(w, "  %sProject type:%s    %s\n", colorGray, colorReset, r.Insights.ProjectType)
	fmt.Fprintf(w, "  %sHealth:%s          %s%.0f/100%s\n", colorGray, colorReset, healthColor(r.Insights.Health.Score), r.Insights.Health.Score, colorReset)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, separator, colorReset)

	if env.Insight != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s%sAI COMMENTARY%s\n", colorBold, colorMagenta, colorReset)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s%s%s\n", colorCyan, cleanFragment(env.Insight, 600), colorReset)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s%s%s\n", colorGray, separator, colorReset)
	}

	fmt.Fprintln(w)
}

// healthColor returns ANSI color for a health score
func healthColor(score float64) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 50:
		return colorYellow
	default:
		return colorRed + colorBold
	}
}

// cleanFragment collapses whitespace and truncates text for console output
func cleanFragment(fragment string, maxLen int) string {
	fragment = strings.Join(strings.Fields(fragment), " ")
	if runes := []rune(fragment); len(runes) > maxLen {
		fragment = string(runes[:maxLen]) + "..."
	}
	return fragment
}

// sortedKeys returns map keys in ascending order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// displayExt renders an empty extension readably
func displayExt(ext string) string {
	if ext == "" {
		return "(no ext)"
	}
	return ext
}
