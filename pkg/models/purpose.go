package models

// PurposeUnknown is returned when no keyword matched a directory name
const PurposeUnknown = "unknown"

// DirectoryPurpose is the inferred role of a directory
type DirectoryPurpose struct {
	Purpose        string `json:"purpose"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
	Priority       string `json:"priority"`
	FileCount      int    `json:"file_count"`
}

// PriorityDirectory is a large source or test directory worth attention
type PriorityDirectory struct {
	Directory string `json:"directory"`
	Purpose   string `json:"purpose"`
	FileCount int    `json:"file_count"`
}
