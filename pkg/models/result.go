package models

import "time"

// ScanReport is the deterministic result of one scan
type ScanReport struct {
	// Summary
	FileCount         int   `json:"file_count"`
	DirectoryCount    int   `json:"directory_count"`
	InaccessibleCount int   `json:"inaccessible_count"`
	MalformedCount    int   `json:"malformed_count"`
	TotalSizeBytes    int64 `json:"total_size_bytes"`
	SymlinkCount      int   `json:"symlink_count"`
	FilesHashed       int   `json:"files_hashed"`
	OversizeSkipped   int   `json:"oversize_skipped"`

	// Duplicates
	DuplicateGroups    []DuplicateGroup    `json:"duplicate_groups"`
	NearDuplicatePairs []NearDuplicatePair `json:"near_duplicate_pairs"`
	VersionClusters    []VersionCluster    `json:"version_clusters"`

	// Activity
	WorkSessions []WorkSession     `json:"work_sessions"`
	Timeline     ActivityTimeline `json:"timeline"`

	// Structure
	NamingTally             NamingConventionTally       `json:"naming_tally"`
	DirectoryPurposes       map[string]DirectoryPurpose `json:"directory_purposes"`
	PurposeDistribution     map[string]int              `json:"purpose_distribution"`
	HighPriorityDirectories []PriorityDirectory         `json:"high_priority_directories"`
	EmptyDirectories        []string                    `json:"empty_directories"`
	ExtensionCounts         map[string]int              `json:"extension_counts"`

	// Content
	ClassificationResults map[string]ClassificationResult `json:"classification_results"`

	Insights ProjectInsights `json:"insights"`
}

// TotalWastedBytes sums wasted bytes over all duplicate groups
func (r *ScanReport) TotalWastedBytes() int64 {
	var total int64
	for _, g := range r.DuplicateGroups {
		total += g.WastedBytes
	}
	return total
}

// ReportEnvelope wraps a ScanReport with run metadata that varies between runs
type ReportEnvelope struct {
	Tool        string      `json:"tool"`
	Version     string      `json:"version"`
	GeneratedAt time.Time   `json:"generated_at"`
	Root        string      `json:"root"`
	DurationMs  int64       `json:"duration_ms"`
	Insight     string      `json:"insight,omitempty"`
	Report      *ScanReport `json:"report"`
	ReportPath  string      `json:"-"`
}
