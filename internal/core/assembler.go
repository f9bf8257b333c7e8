package core

import (
	"sort"

	"github.com/IvanShishkin/treelens/internal/duplicates"
	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/internal/purpose"
	"github.com/IvanShishkin/treelens/pkg/models"
)

// Parts are the independent analyzer outputs of one scan
type Parts struct {
	Inventory          *filesystem.Inventory
	HashStats          duplicates.HashStats
	DuplicateGroups    []models.DuplicateGroup
	NearDuplicatePairs []models.NearDuplicatePair
	VersionClusters    []models.VersionCluster
	WorkSessions       []models.WorkSession
	Timeline           models.ActivityTimeline
	NamingTally        models.NamingConventionTally
	Purposes           *purpose.Result
	Classifications    map[string]models.ClassificationResult
	MalformedPaths     []string
	UnreadablePaths    []string
	Insights           models.ProjectInsights
}

// Assemble merges analyzer outputs into a ScanReport.
// Slices come out sorted and never nil, so equal inputs give equal JSON.
func Assemble(p *Parts) *models.ScanReport {
	inv := p.Inventory

	report := &models.ScanReport{
		FileCount:         len(inv.Files),
		DirectoryCount:    len(inv.Dirs),
		InaccessibleCount: len(InaccessiblePaths(p)),
		MalformedCount:    len(p.MalformedPaths),
		TotalSizeBytes:    TotalSize(inv.Files),
		SymlinkCount:      inv.Stats.Symlinks,
		FilesHashed:       p.HashStats.Hashed,
		OversizeSkipped:   p.HashStats.Oversize,

		DuplicateGroups:    nonNil(p.DuplicateGroups),
		NearDuplicatePairs: nonNil(p.NearDuplicatePairs),
		VersionClusters:    nonNil(p.VersionClusters),

		WorkSessions: nonNil(p.WorkSessions),
		Timeline:     p.Timeline,

		NamingTally:             p.NamingTally,
		DirectoryPurposes:       map[string]models.DirectoryPurpose{},
		PurposeDistribution:     map[string]int{},
		HighPriorityDirectories: []models.PriorityDirectory{},
		EmptyDirectories:        EmptyDirectories(inv.Dirs),
		ExtensionCounts:         ExtensionCounts(inv.Files),

		ClassificationResults: p.Classifications,
		Insights:              p.Insights,
	}

	if report.ClassificationResults == nil {
		report.ClassificationResults = map[string]models.ClassificationResult{}
	}
	if report.Timeline.MonthlyActivity == nil {
		report.Timeline.MonthlyActivity = map[string]int{}
	}
	if p.Purposes != nil {
		report.DirectoryPurposes = p.Purposes.Purposes
		report.PurposeDistribution = p.Purposes.Distribution
		report.HighPriorityDirectories = nonNil(p.Purposes.HighPriority)
	}
	report.Insights.Consolidation = nonNil(report.Insights.Consolidation)

	return report
}

// InaccessiblePaths merges walk, hashing and read failures, counting each path once
func InaccessiblePaths(p *Parts) []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(list []string) {
		for _, path := range list {
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}

	add(p.Inventory.Stats.InaccessiblePaths)
	add(p.HashStats.FailedPaths)
	add(p.UnreadablePaths)

	sort.Strings(paths)
	return paths
}

// EmptyDirectories returns the sorted paths of directories with no entries
func EmptyDirectories(dirs []models.DirRecord) []string {
	empty := []string{}
	for _, d := range dirs {
		if d.Empty {
			empty = append(empty, d.RelativePath)
		}
	}
	sort.Strings(empty)
	return empty
}

// ExtensionCounts counts files per lowercase extension; "" is files without one
func ExtensionCounts(files []models.FileRecord) map[string]int {
	counts := make(map[string]int)
	for i := range files {
		counts[files[i].Extension]++
	}
	return counts
}

// TotalSize sums file sizes
func TotalSize(files []models.FileRecord) int64 {
	var total int64
	for i := range files {
		total += files[i].SizeBytes
	}
	return total
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
