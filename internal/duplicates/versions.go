package duplicates

import (
	"regexp"
	"sort"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
)

type versionPattern struct {
	label string
	re    *regexp.Regexp
}

// Suffixes are matched at the end of the lowercase file stem
var versionPatterns = []versionPattern{
	{`_v\d+`, regexp.MustCompile(`_v\d+$`)},
	{`_old`, regexp.MustCompile(`_old$`)},
	{`_new`, regexp.MustCompile(`_new$`)},
	{`_final`, regexp.MustCompile(`_final$`)},
	{`_backup`, regexp.MustCompile(`_backup$`)},
	{`_copy`, regexp.MustCompile(`_copy$`)},
	{`(\d+)`, regexp.MustCompile(`\s*\(\d+\)$`)},
}

// StripVersion removes a recognised version suffix from a lowercase file name.
// It returns the base name, the matched pattern and whether anything matched.
func StripVersion(name string) (string, string, bool) {
	stem, ext := name, ""
	if dot := strings.LastIndex(name, "."); dot > 0 {
		stem, ext = name[:dot], name[dot:]
	}

	for _, p := range versionPatterns {
		loc := p.re.FindStringIndex(stem)
		if loc == nil || loc[0] == 0 {
			continue
		}
		return stem[:loc[0]] + ext, p.label, true
	}
	return name, "", false
}

// FindVersionClusters groups files whose names differ only by a version suffix.
// A cluster is kept when the base name exists in the tree or when at least
// two versioned names share it.
func FindVersionClusters(files []models.FileRecord) []models.VersionCluster {
	index, names := namesIndex(files)

	byBase := make(map[string][]models.VersionedFile)
	for _, name := range names {
		base, pattern, ok := StripVersion(name)
		if !ok {
			continue
		}
		byBase[base] = append(byBase[base], models.VersionedFile{
			Name:    name,
			Pattern: pattern,
			Paths:   index[name],
		})
	}

	clusters := make([]models.VersionCluster, 0)
	for base, versions := range byBase {
		basePaths, exists := index[base]
		if !exists && len(versions) < 2 {
			continue
		}
		if basePaths == nil {
			basePaths = []string{}
		}
		clusters = append(clusters, models.VersionCluster{
			BaseName:  base,
			BasePaths: basePaths,
			Versions:  versions,
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].BaseName < clusters[j].BaseName
	})
	return clusters
}
