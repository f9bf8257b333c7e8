package ai

import (
	"sort"

	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/pkg/models"
)

const (
	maxDigestDuplicates = 5
	maxDigestMembers    = 3
	maxDigestSessions   = 3
	maxDigestItems      = 10
)

// Digest is the compact view of a ScanReport sent to the model.
// It carries paths and counts only, never file contents.
type Digest struct {
	Files           int            `json:"files"`
	Directories     int            `json:"directories"`
	TotalSize       string         `json:"total_size"`
	Inaccessible    int            `json:"inaccessible"`
	Malformed       int            `json:"malformed"`
	ProjectType     string         `json:"project_type"`
	HealthScore     float64        `json:"health_score"`
	Languages       map[string]int `json:"languages,omitempty"`
	PackageManagers []string       `json:"package_managers,omitempty"`

	DuplicateGroups int               `json:"duplicate_groups"`
	WastedSize      string            `json:"wasted_size"`
	TopDuplicates   []DuplicateDigest `json:"top_duplicates,omitempty"`
	SimilarNames    int               `json:"similar_name_pairs"`
	VersionedFiles  []string          `json:"versioned_files,omitempty"`

	WorkSessions   int             `json:"work_sessions"`
	RecentSessions []SessionDigest `json:"recent_sessions,omitempty"`
	ProjectAgeDays int             `json:"project_age_days"`

	DominantNaming   string         `json:"dominant_naming,omitempty"`
	NamingCounts     map[string]int `json:"naming_counts,omitempty"`
	Purposes         map[string]int `json:"directory_purposes,omitempty"`
	EmptyDirectories int            `json:"empty_directories"`
	DocumentTypes    map[string]int `json:"document_types,omitempty"`
	Suggestions      []string       `json:"suggestions,omitempty"`
}

// DuplicateDigest summarizes one duplicate group
type DuplicateDigest struct {
	Files  []string `json:"files"`
	Copies int      `json:"copies"`
	Wasted string   `json:"wasted"`
}

// SessionDigest summarizes one work session
type SessionDigest struct {
	Start   string  `json:"start"`
	Files   int     `json:"files"`
	Minutes float64 `json:"minutes"`
}

// BuildDigest reduces a report to the facts worth commenting on
func BuildDigest(r *models.ScanReport) *Digest {
	d := &Digest{
		Files:            r.FileCount,
		Directories:      r.DirectoryCount,
		TotalSize:        filesystem.FormatSize(r.TotalSizeBytes),
		Inaccessible:     r.InaccessibleCount,
		Malformed:        r.MalformedCount,
		ProjectType:      r.Insights.ProjectType,
		HealthScore:      r.Insights.Health.Score,
		Languages:        r.Insights.TechStack.Languages,
		DuplicateGroups:  len(r.DuplicateGroups),
		WastedSize:       filesystem.FormatSize(r.TotalWastedBytes()),
		SimilarNames:     len(r.NearDuplicatePairs),
		WorkSessions:     len(r.WorkSessions),
		ProjectAgeDays:   r.Timeline.ProjectAgeDays,
		DominantNaming:   r.NamingTally.DominantConvention,
		NamingCounts:     r.NamingTally.Counts,
		Purposes:         r.PurposeDistribution,
		EmptyDirectories: len(r.EmptyDirectories),
	}

	for _, pm := range r.Insights.TechStack.PackageManagers {
		d.PackageManagers = append(d.PackageManagers, pm.Name)
	}

	for i, group := range r.DuplicateGroups {
		if i == maxDigestDuplicates {
			break
		}
		members := group.Members
		if len(members) > maxDigestMembers {
			members = members[:maxDigestMembers]
		}
		d.TopDuplicates = append(d.TopDuplicates, DuplicateDigest{
			Files:  members,
			Copies: len(group.Members),
			Wasted: filesystem.FormatSize(group.WastedBytes),
		})
	}

	for i, cluster := range r.VersionClusters {
		if i == maxDigestItems {
			break
		}
		d.VersionedFiles = append(d.VersionedFiles, cluster.BaseName)
	}

	for i, s := range r.WorkSessions {
		if i == maxDigestSessions {
			break
		}
		d.RecentSessions = append(d.RecentSessions, SessionDigest{
			Start:   s.StartTime.Format("2006-01-02 15:04"),
			Files:   s.FileCount,
			Minutes: s.DurationMinutes,
		})
	}

	if len(r.ClassificationResults) > 0 {
		d.DocumentTypes = make(map[string]int)
		for _, c := range r.ClassificationResults {
			d.DocumentTypes[c.Category]++
		}
	}

	for i, hint := range r.Insights.Consolidation {
		if i == maxDigestItems {
			break
		}
		d.Suggestions = append(d.Suggestions, hint.Action)
	}
	sort.Strings(d.VersionedFiles)

	return d
}
