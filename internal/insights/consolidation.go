package insights

import (
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
)

const (
	maxEmptyDirsListed = 10
	minScatteredDocs   = 3
)

// ConsolidationInput carries the analyzer outputs consolidation is derived from
type ConsolidationInput struct {
	Files            []models.FileRecord
	DuplicateGroups  []models.DuplicateGroup
	VersionClusters  []models.VersionCluster
	EmptyDirectories []string
}

// Consolidation suggests cleanups: duplicates, manual versions, empty dirs and scattered READMEs
func Consolidation(in ConsolidationInput) []models.ConsolidationHint {
	hints := []models.ConsolidationHint{}

	for _, g := range in.DuplicateGroups {
		hints = append(hints, models.ConsolidationHint{
			Type:       models.HintExactDuplicate,
			Action:     "Delete duplicates, keep one",
			Paths:      g.Members,
			Count:      len(g.Members),
			SavedBytes: g.WastedBytes,
		})
	}

	for _, c := range in.VersionClusters {
		paths := append([]string(nil), c.BasePaths...)
		for _, v := range c.Versions {
			paths = append(paths, v.Paths...)
		}
		hints = append(hints, models.ConsolidationHint{
			Type:   models.HintVersionFiles,
			Action: "Use version control instead of manual versions of '" + c.BaseName + "'",
			Paths:  paths,
			Count:  len(paths),
		})
	}

	if n := len(in.EmptyDirectories); n > 0 {
		listed := in.EmptyDirectories
		if n > maxEmptyDirsListed {
			listed = listed[:maxEmptyDirsListed]
		}
		hints = append(hints, models.ConsolidationHint{
			Type:   models.HintEmptyDirectories,
			Action: "Remove empty directories",
			Paths:  append([]string(nil), listed...),
			Count:  n,
		})
	}

	var readmes []string
	for i := range in.Files {
		if strings.HasPrefix(strings.ToLower(in.Files[i].Name), "readme") {
			readmes = append(readmes, in.Files[i].RelativePath)
		}
	}
	if len(readmes) > minScatteredDocs {
		hints = append(hints, models.ConsolidationHint{
			Type:   models.HintScatteredReadmes,
			Action: "Consolidate README files into central documentation",
			Paths:  readmes,
			Count:  len(readmes),
		})
	}

	return hints
}
