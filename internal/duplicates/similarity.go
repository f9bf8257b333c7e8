package duplicates

import (
	"math"

	"github.com/IvanShishkin/treelens/pkg/models"
)

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0, 1]:
// twice the number of matched characters divided by the total length.
// Matching blocks are found the same way as Python's difflib without junk.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

// upperBound is the best ratio a pair of these lengths could reach
func upperBound(la, lb int) float64 {
	if la+lb == 0 {
		return 1
	}
	return 2 * float64(min(la, lb)) / float64(la+lb)
}

type span struct{ alo, ahi, blo, bhi int }

func matchingChars(a, b []rune) int {
	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest common block in a[alo:ahi] and b[blo:bhi],
// preferring the earliest start in a, then in b.
func longestMatch(a, b []rune, s span) (int, int, int) {
	besti, bestj, bestk := s.alo, s.blo, 0
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := s.alo; i < s.ahi; i++ {
		for j := s.blo; j < s.bhi; j++ {
			if a[i] != b[j] {
				curr[j+1] = 0
				continue
			}
			k := prev[j] + 1
			curr[j+1] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return besti, bestj, bestk
}

// FindNearDuplicates compares every pair of distinct lowercase file names and
// returns pairs with threshold <= ratio < 1, ordered by name.
func FindNearDuplicates(files []models.FileRecord, threshold float64) []models.NearDuplicatePair {
	index, names := namesIndex(files)
	lengths := make([]int, len(names))
	for i, n := range names {
		lengths[i] = len([]rune(n))
	}

	pairs := make([]models.NearDuplicatePair, 0)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if upperBound(lengths[i], lengths[j]) < threshold {
				continue
			}
			r := Ratio(names[i], names[j])
			if r < threshold || r >= 1 {
				continue
			}
			pairs = append(pairs, models.NearDuplicatePair{
				NameA:      names[i],
				NameB:      names[j],
				Similarity: math.Round(r*10000) / 10000,
				PathsA:     index[names[i]],
				PathsB:     index[names[j]],
			})
		}
	}
	return pairs
}
