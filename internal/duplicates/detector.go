package duplicates

import (
	"sort"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
)

// FindDuplicates groups hashed files by content hash and returns groups
// with at least two members, largest waste first.
func FindDuplicates(hashes []HashResult) []models.DuplicateGroup {
	byHash := make(map[string][]HashResult)
	for _, h := range hashes {
		byHash[h.Hash] = append(byHash[h.Hash], h)
	}

	groups := make([]models.DuplicateGroup, 0)
	for hash, members := range byHash {
		if len(members) < 2 {
			continue
		}

		paths := make([]string, len(members))
		for i, m := range members {
			paths[i] = m.RelativePath
		}
		sort.Strings(paths)

		size := members[0].SizeBytes
		groups = append(groups, models.DuplicateGroup{
			ContentHash: hash,
			Members:     paths,
			SizeBytes:   size,
			WastedBytes: size * int64(len(paths)-1),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].WastedBytes != groups[j].WastedBytes {
			return groups[i].WastedBytes > groups[j].WastedBytes
		}
		return groups[i].ContentHash < groups[j].ContentHash
	})
	return groups
}

// namesIndex maps lowercase file names to the sorted paths carrying them
func namesIndex(files []models.FileRecord) (map[string][]string, []string) {
	index := make(map[string][]string)
	for _, f := range files {
		name := strings.ToLower(f.Name)
		index[name] = append(index[name], f.RelativePath)
	}

	names := make([]string, 0, len(index))
	for name, paths := range index {
		sort.Strings(paths)
		names = append(names, name)
	}
	sort.Strings(names)
	return index, names
}
