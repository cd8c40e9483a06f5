package recommendation

import (
	"sort"
	"strings"

	"customerAgent/domain"
)

const (
	segmentPremium = "premium"
	segmentBudget  = "budget"
)

// ScoreContent scores every catalog product against the category weights and
// returns at most n candidates, best first. Products scoring zero are dropped
// and ties keep catalog order.
func ScoreContent(
	cfg Config,
	weights domain.CategoryWeights,
	catalog []domain.Product,
	segment string,
	n int,
) []domain.ScoredCandidate {

	if len(catalog) == 0 || len(weights) == 0 || n <= 0 {
		return []domain.ScoredCandidate{}
	}

	segment = strings.ToLower(segment)
	scored := make([]domain.ScoredCandidate, 0, len(catalog))

	for _, p := range catalog {
		score := contentScore(cfg, weights, p)

		if segmentBoosted(cfg, segment, p.Price) {
			score *= cfg.SegmentBoost
		}

		if score <= 0 {
			continue
		}

		scored = append(scored, domain.ScoredCandidate{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    p.ProductCategory,
			Price:       p.Price,
			Score:       score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}

	return scored
}

func contentScore(cfg Config, weights domain.CategoryWeights, p domain.Product) float64 {
	category := strings.ToLower(p.ProductCategory)
	tags := strings.ToLower(p.Tags)

	score := 0.0

	exactWeight, exact := weights[category]
	if exact {
		score += exactWeight * cfg.ExactMatchBonus
	}

	for weighted, w := range weights {
		countedExact := exact && weighted == category && !cfg.PartialMatchIncludesExact
		if !countedExact && (strings.Contains(category, weighted) || strings.Contains(weighted, category)) {
			score += w * cfg.PartialMatchBonus
		}

		if strings.Contains(tags, weighted) {
			score += w * cfg.TagMatchBonus
		}
	}

	return score
}

func segmentBoosted(cfg Config, segment string, price float64) bool {
	switch segment {
	case segmentPremium:
		return price > cfg.PremiumPriceFloor
	case segmentBudget:
		return price < cfg.BudgetPriceCeiling
	}
	return false
}
