package recommendation

import (
	"context"
	"fmt"
	"strings"

	"customerAgent/domain"
)

// suggestCollaborative injects one random product from each category that
// peers of the same segment buy most. It is a diversity pick, not a
// similarity model.
func (e *Engine) suggestCollaborative(
	ctx context.Context,
	signal domain.CustomerSignal,
	catalog []domain.Product,
	n int,
) ([]domain.ScoredCandidate, error) {

	if n <= 0 || !signal.HasSegmentRecord {
		return []domain.ScoredCandidate{}, nil
	}

	categories, err := e.customers.PopularSegmentCategories(ctx, signal.SegmentType, signal.CustomerID, n)
	if err != nil {
		return nil, fmt.Errorf("load segment categories: %w", err)
	}

	return e.pickRepresentatives(categories, catalog, n), nil
}

func (e *Engine) pickRepresentatives(categories []string, catalog []domain.Product, n int) []domain.ScoredCandidate {
	if len(categories) > n {
		categories = categories[:n]
	}

	byCategory := make(map[string][]domain.Product)
	for _, p := range catalog {
		key := strings.ToLower(p.ProductCategory)
		byCategory[key] = append(byCategory[key], p)
	}

	out := make([]domain.ScoredCandidate, 0, len(categories))
	for _, category := range categories {
		pool := byCategory[strings.ToLower(category)]
		if len(pool) == 0 {
			continue
		}

		p := pool[e.intn(len(pool))]
		out = append(out, domain.ScoredCandidate{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    p.ProductCategory,
			Price:       p.Price,
			Score:       e.cfg.CollaborativeScore,
		})
	}

	return out
}
