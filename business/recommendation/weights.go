package recommendation

import (
	"math"
	"strings"

	"customerAgent/domain"
)

// ComputeCategoryWeights turns a signal into an L1-normalized category
// distribution. Browsing decays harmonically with recency; purchases are
// weighted by price relative to the customer's average order value.
func ComputeCategoryWeights(cfg Config, signal domain.CustomerSignal) domain.CategoryWeights {
	acc := make(domain.CategoryWeights)

	for i, category := range signal.BrowsingEvents {
		acc[strings.ToLower(category)] += cfg.BrowseWeight * (1.0 / float64(i+1))
	}

	avgOrderValue := math.Max(signal.AvgOrderValue, 1)
	for _, purchase := range signal.PurchaseEvents {
		acc[strings.ToLower(purchase.Category)] += cfg.PurchaseWeight * (purchase.Price / avgOrderValue)
	}

	if len(acc) == 0 {
		return acc
	}

	total := 0.0
	for _, w := range acc {
		total += w
	}

	// only zero-priced purchases: nothing to normalize against
	if total <= 0 {
		return make(domain.CategoryWeights)
	}

	for category, w := range acc {
		acc[category] = w / total
	}

	return acc
}
