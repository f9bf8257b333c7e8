package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/internal/naming"
	"github.com/IvanShishkin/treelens/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(env *models.ReportEnvelope, outputFile string) error {
	r := env.Report
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Treelens Project Scan Report v%s\n\n", env.Version))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Scan Path | `%s` |\n", env.Root))
	sb.WriteString(fmt.Sprintf("| Generated | %s |\n", env.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(time.Duration(env.DurationMs)*time.Millisecond)))
	sb.WriteString(fmt.Sprintf("| Files | %d |\n", r.FileCount))
	sb.WriteString(fmt.Sprintf("| Directories | %d |\n", r.DirectoryCount))
	sb.WriteString(fmt.Sprintf("| Total Size | %s |\n", filesystem.FormatSize(r.TotalSizeBytes)))
	sb.WriteString(fmt.Sprintf("| Inaccessible | %d |\n", r.InaccessibleCount))
	sb.WriteString(fmt.Sprintf("| Malformed | %d |\n", r.MalformedCount))
	sb.WriteString(fmt.Sprintf("| Project Type | %s |\n", r.Insights.ProjectType))
	sb.WriteString(fmt.Sprintf("| **Health Score** | **%.0f/100** |\n", r.Insights.Health.Score))
	sb.WriteString("\n")

	if env.Insight != "" {
		sb.WriteString("## AI Commentary\n\n")
		for _, line := range strings.Split(strings.TrimSpace(env.Insight), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")
	}

	// Duplicates
	sb.WriteString("## Exact Duplicates\n\n")
	if len(r.DuplicateGroups) == 0 {
		sb.WriteString("No duplicate files.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d groups, %s wasted.\n\n", len(r.DuplicateGroups), filesystem.FormatSize(r.TotalWastedBytes())))
		sb.WriteString("| Hash | Size | Wasted | Files |\n")
		sb.WriteString("|------|------|--------|-------|\n")
		for _, group := range r.DuplicateGroups {
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
				group.ContentHash[:min(12, len(group.ContentHash))], filesystem.FormatSize(group.SizeBytes),
				filesystem.FormatSize(group.WastedBytes), codeList(group.Members)))
		}
		sb.WriteString("\n")
	}

	if len(r.NearDuplicatePairs) > 0 {
		sb.WriteString("## Similar File Names\n\n")
		sb.WriteString("| Name A | Name B | Similarity |\n")
		sb.WriteString("|--------|--------|------------|\n")
		for _, pair := range r.NearDuplicatePairs {
			sb.WriteString(fmt.Sprintf("| `%s` | `%s` | %.1f%% |\n", pair.NameA, pair.NameB, pair.Similarity*100))
		}
		sb.WriteString("\n")
	}

	if len(r.VersionClusters) > 0 {
		sb.WriteString("## Version Clusters\n\n")
		for _, cluster := range r.VersionClusters {
			sb.WriteString(fmt.Sprintf("- **%s**\n", cluster.BaseName))
			for _, v := range cluster.Versions {
				sb.WriteString(fmt.Sprintf("  - `%s` (`%s`)\n", v.Name, v.Pattern))
			}
		}
		sb.WriteString("\n")
	}

	// Activity
	sb.WriteString("## Work Sessions\n\n")
	if len(r.WorkSessions) == 0 {
		sb.WriteString("No work sessions found.\n\n")
	} else {
		sb.WriteString("| Start | End | Files | Minutes |\n")
		sb.WriteString("|-------|-----|-------|---------|\n")
		for _, s := range r.WorkSessions {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f |\n",
				s.StartTime.Format("2006-01-02 15:04"), s.EndTime.Format("2006-01-02 15:04"), s.FileCount, s.DurationMinutes))
		}
		sb.WriteString("\n")
	}

	// Structure
	sb.WriteString("## Naming Conventions\n\n")
	sb.WriteString("| Convention | Count |\n")
	sb.WriteString("|------------|-------|\n")
	for _, name := range naming.Conventions() {
		count := fmt.Sprintf("%d", r.NamingTally.Counts[name])
		if name == r.NamingTally.DominantConvention {
			count = "**" + count + "**"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", name, count))
	}
	sb.WriteString("\n")

	sb.WriteString("## Directory Purposes\n\n")
	sb.WriteString("| Purpose | Directories |\n")
	sb.WriteString("|---------|-------------|\n")
	for _, purpose := range sortedKeys(r.PurposeDistribution) {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", purpose, r.PurposeDistribution[purpose]))
	}
	sb.WriteString("\n")

	sb.WriteString("## Extensions\n\n")
	sb.WriteString("| Extension | Files |\n")
	sb.WriteString("|-----------|-------|\n")
	for _, ext := range sortedKeys(r.ExtensionCounts) {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", displayExt(ext), r.ExtensionCounts[ext]))
	}
	sb.WriteString("\n")

	if len(r.ClassificationResults) > 0 {
		sb.WriteString("## Document Classification\n\n")
		sb.WriteString("| File | Category | Confidence | Signals |\n")
		sb.WriteString("|------|----------|------------|---------|\n")
		for _, path := range sortedKeys(r.ClassificationResults) {
			c := r.ClassificationResults[path]
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %.2f | %s |\n", path, c.Category, c.Confidence, strings.Join(c.MatchedSignals, ", ")))
		}
		sb.WriteString("\n")
	}

	if len(r.Insights.Consolidation) > 0 {
		sb.WriteString("## Consolidation Opportunities\n\n")
		for _, hint := range r.Insights.Consolidation {
			sb.WriteString(fmt.Sprintf("- **%s** (%d): %s\n", hint.Action, hint.Count, codeList(hint.Paths)))
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// codeList renders paths as inline code separated by commas
func codeList(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = "`" + p + "`"
	}
	return strings.Join(quoted, ", ")
}
