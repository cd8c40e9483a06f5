package recommendation

import (
	"sort"

	"customerAgent/domain"
)

// MergeCandidates appends collaborative picks after the content candidates,
// skipping product ids already present, until limit items are collected.
// The result is re-sorted by score.
func MergeCandidates(content, collaborative []domain.ScoredCandidate, limit int) []domain.ScoredCandidate {
	if limit <= 0 {
		return []domain.ScoredCandidate{}
	}

	out := make([]domain.ScoredCandidate, 0, limit)
	seen := make(map[uint64]struct{}, limit)

	add := func(list []domain.ScoredCandidate) {
		for _, c := range list {
			if len(out) >= limit {
				return
			}
			if _, dup := seen[c.ProductID]; dup {
				continue
			}
			seen[c.ProductID] = struct{}{}
			out = append(out, c)
		}
	}

	add(content)
	add(collaborative)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}
