package recommendation

import (
	"testing"

	"customerAgent/domain"

	"github.com/stretchr/testify/assert"
)

func cand(id uint64, score float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{ProductID: id, Score: score}
}

func ids(list []domain.ScoredCandidate) []uint64 {
	out := make([]uint64, 0, len(list))
	for _, c := range list {
		out = append(out, c.ProductID)
	}
	return out
}

func TestMergeCandidates_SkipsDuplicatesAndResorts(t *testing.T) {
	content := []domain.ScoredCandidate{cand(1, 2.4), cand(2, 0.9), cand(3, 0.2)}
	collaborative := []domain.ScoredCandidate{cand(2, 0.5), cand(7, 0.5)}

	got := MergeCandidates(content, collaborative, 10)

	assert.Equal(t, []uint64{1, 2, 7, 3}, ids(got))
	assert.InDelta(t, 0.9, got[1].Score, 1e-12)
}

func TestMergeCandidates_StopsAtLimit(t *testing.T) {
	content := []domain.ScoredCandidate{cand(1, 2), cand(2, 1)}
	collaborative := []domain.ScoredCandidate{cand(3, 0.5), cand(4, 0.5)}

	got := MergeCandidates(content, collaborative, 3)
	assert.Equal(t, []uint64{1, 2, 3}, ids(got))

	assert.Empty(t, MergeCandidates(content, collaborative, 0))
}

func TestMergeCandidates_CollaborativeOnly(t *testing.T) {
	got := MergeCandidates(nil, []domain.ScoredCandidate{cand(9, 0.5)}, 5)
	assert.Equal(t, []uint64{9}, ids(got))
}

func TestMergeCandidates_NoDuplicateIDs(t *testing.T) {
	content := []domain.ScoredCandidate{cand(1, 1), cand(1, 1), cand(2, 1)}
	collaborative := []domain.ScoredCandidate{cand(2, 0.5), cand(1, 0.5), cand(3, 0.5), cand(3, 0.5)}

	got := MergeCandidates(content, collaborative, 10)

	seen := map[uint64]bool{}
	for _, c := range got {
		assert.False(t, seen[c.ProductID], "duplicate product %d", c.ProductID)
		seen[c.ProductID] = true
	}
	assert.Len(t, got, 3)
}
