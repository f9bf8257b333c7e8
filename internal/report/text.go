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

// generateText generates a text report
func (g *Generator) generateText(env *models.ReportEnvelope, outputFile string) error {
	r := env.Report
	var sb strings.Builder
	rule := strings.Repeat("-", 79) + "\n"

	// Header
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString(fmt.Sprintf("  TREELENS PROJECT SCAN REPORT v%s\n", env.Version))
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(rule)
	sb.WriteString(fmt.Sprintf("Scan Path:        %s\n", env.Root))
	sb.WriteString(fmt.Sprintf("Generated:        %s\n", env.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(time.Duration(env.DurationMs)*time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Files:            %d\n", r.FileCount))
	sb.WriteString(fmt.Sprintf("Directories:      %d\n", r.DirectoryCount))
	sb.WriteString(fmt.Sprintf("Total Size:       %s\n", filesystem.FormatSize(r.TotalSizeBytes)))
	sb.WriteString(fmt.Sprintf("Inaccessible:     %d\n", r.InaccessibleCount))
	sb.WriteString(fmt.Sprintf("Malformed:        %d\n", r.MalformedCount))
	sb.WriteString(fmt.Sprintf("Symlinks Skipped: %d\n", r.SymlinkCount))
	sb.WriteString(fmt.Sprintf("Files Hashed:     %d (%d above size ceiling)\n", r.FilesHashed, r.OversizeSkipped))
	sb.WriteString("\n")

	// Duplicates
	sb.WriteString("EXACT DUPLICATES\n")
	sb.WriteString(rule)
	if len(r.DuplicateGroups) == 0 {
		sb.WriteString("None.\n")
	}
	for i, group := range r.DuplicateGroups {
		sb.WriteString(fmt.Sprintf("[%d] md5 %s, %s each, %s wasted\n",
			i+1, group.ContentHash, filesystem.FormatSize(group.SizeBytes), filesystem.FormatSize(group.WastedBytes)))
		for _, member := range group.Members {
			sb.WriteString(fmt.Sprintf("    %s\n", member))
		}
	}
	sb.WriteString("\n")

	if len(r.NearDuplicatePairs) > 0 {
		sb.WriteString("SIMILAR FILE NAMES\n")
		sb.WriteString(rule)
		for _, pair := range r.NearDuplicatePairs {
			sb.WriteString(fmt.Sprintf("%.1f%%  %s <-> %s\n", pair.Similarity*100, pair.NameA, pair.NameB))
		}
		sb.WriteString("\n")
	}

	if len(r.VersionClusters) > 0 {
		sb.WriteString("VERSION CLUSTERS\n")
		sb.WriteString(rule)
		for _, cluster := range r.VersionClusters {
			sb.WriteString(fmt.Sprintf("%s (%d versions)\n", cluster.BaseName, len(cluster.Versions)))
			for _, v := range cluster.Versions {
				sb.WriteString(fmt.Sprintf("    %-30s %s\n", v.Name, v.Pattern))
			}
		}
		sb.WriteString("\n")
	}

	// Activity
	sb.WriteString("WORK SESSIONS\n")
	sb.WriteString(rule)
	if len(r.WorkSessions) == 0 {
		sb.WriteString("None.\n")
	}
	for _, s := range r.WorkSessions {
		sb.WriteString(fmt.Sprintf("%s - %s  %4d files  %.1f min\n",
			s.StartTime.Format("2006-01-02 15:04"), s.EndTime.Format("2006-01-02 15:04"), s.FileCount, s.DurationMinutes))
	}
	if r.Timeline.FirstActivity != nil && r.Timeline.LastActivity != nil {
		sb.WriteString(fmt.Sprintf("Activity span:    %s to %s (%d days)\n",
			r.Timeline.FirstActivity.Format("2006-01-02"), r.Timeline.LastActivity.Format("2006-01-02"), r.Timeline.ProjectAgeDays))
	}
	sb.WriteString("\n")

	// Structure
	sb.WriteString("NAMING CONVENTIONS\n")
	sb.WriteString(rule)
	for _, name := range naming.Conventions() {
		sb.WriteString(fmt.Sprintf("  %-22s %d\n", name, r.NamingTally.Counts[name]))
	}
	if r.NamingTally.DominantConvention != "" {
		sb.WriteString(fmt.Sprintf("Dominant:         %s\n", r.NamingTally.DominantConvention))
	}
	sb.WriteString("\n")

	sb.WriteString("DIRECTORY PURPOSES\n")
	sb.WriteString(rule)
	for _, purpose := range sortedKeys(r.PurposeDistribution) {
		sb.WriteString(fmt.Sprintf("  %-22s %d\n", purpose, r.PurposeDistribution[purpose]))
	}
	for _, dir := range r.HighPriorityDirectories {
		sb.WriteString(fmt.Sprintf("High priority:    %s (%s, %d files)\n", dir.Directory, dir.Purpose, dir.FileCount))
	}
	if len(r.EmptyDirectories) > 0 {
		sb.WriteString(fmt.Sprintf("Empty:            %s\n", strings.Join(r.EmptyDirectories, ", ")))
	}
	sb.WriteString("\n")

	if len(r.ClassificationResults) > 0 {
		sb.WriteString("DOCUMENT CLASSIFICATION\n")
		sb.WriteString(rule)
		for _, path := range sortedKeys(r.ClassificationResults) {
			c := r.ClassificationResults[path]
			sb.WriteString(fmt.Sprintf("%-50s %-15s %.2f\n", path, c.Category, c.Confidence))
			if len(c.MatchedSignals) > 0 {
				sb.WriteString(fmt.Sprintf("    signals: %s\n", strings.Join(c.MatchedSignals, ", ")))
			}
		}
		sb.WriteString("\n")
	}

	// Insights
	in := r.Insights
	sb.WriteString("PROJECT INSIGHTS\n")
	sb.WriteString(rule)
	sb.WriteString(fmt.Sprintf("Project Type:     %s\n", in.ProjectType))
	sb.WriteString(fmt.Sprintf("Health Score:     %.0f/100\n", in.Health.Score))
	if in.Health.GitBranch != "" {
		sb.WriteString(fmt.Sprintf("Git:              %s @ %s\n", in.Health.GitBranch, in.Health.GitHead))
	}
	sb.WriteString(fmt.Sprintf("Diversity:        %.4f\n", in.ShannonDiversity))
	for _, lang := range sortedKeys(in.TechStack.Languages) {
		sb.WriteString(fmt.Sprintf("  %-22s %d (%.1f%%)\n", lang, in.TechStack.Languages[lang], in.TechStack.LanguageDistribution[lang]))
	}
	for _, pm := range in.TechStack.PackageManagers {
		sb.WriteString(fmt.Sprintf("Package Manager:  %s (%s)\n", pm.Name, strings.Join(pm.Paths, ", ")))
	}
	for _, hint := range in.Consolidation {
		sb.WriteString(fmt.Sprintf("Suggestion:       %s [%s, %d]\n", hint.Action, hint.Type, hint.Count))
	}
	sb.WriteString("\n")

	if env.Insight != "" {
		sb.WriteString("AI COMMENTARY\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")
		sb.WriteString(env.Insight + "\n\n")
	}

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
