package models

// DuplicateGroup is a set of files with identical content
type DuplicateGroup struct {
	ContentHash string   `json:"content_hash"`
	Members     []string `json:"members"`
	SizeBytes   int64    `json:"size_bytes"`
	WastedBytes int64    `json:"wasted_bytes"`
}

// NearDuplicatePair links two distinct file names that look alike
type NearDuplicatePair struct {
	NameA      string   `json:"name_a"`
	NameB      string   `json:"name_b"`
	Similarity float64  `json:"similarity"`
	PathsA     []string `json:"paths_a"`
	PathsB     []string `json:"paths_b"`
}

// VersionCluster groups files whose names differ only by a version suffix
type VersionCluster struct {
	BaseName  string          `json:"base_name"`
	BasePaths []string        `json:"base_paths"`
	Versions  []VersionedFile `json:"versions"`
}

// VersionedFile is one member of a VersionCluster
type VersionedFile struct {
	Name    string   `json:"name"`
	Pattern string   `json:"pattern"` // Suffix pattern that matched
	Paths   []string `json:"paths"`
}
