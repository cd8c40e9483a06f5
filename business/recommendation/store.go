package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customerAgent/domain"
	"customerAgent/pkg/logger"
)

// Store persists recommendation sets through a RecommendationRepository and
// rehydrates them against the current catalog.
type Store struct {
	repo      RecommendationRepository
	catalog   ProductCatalog
	retention int
	now       func() time.Time
}

func NewStore(repo RecommendationRepository, catalog ProductCatalog, retention int, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	if retention <= 0 {
		retention = defaultRetentionCap
	}
	return &Store{
		repo:      repo,
		catalog:   catalog,
		retention: retention,
		now:       now,
	}
}

// Save stores candidates as the newest hybrid set of the customer and evicts
// everything beyond the retention cap.
func (s *Store) Save(ctx context.Context, customerID string, candidates []domain.ScoredCandidate) (domain.RecommendationSet, error) {
	now := s.now()

	items := make([]domain.StoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, domain.StoredCandidate{
			ProductID: c.ProductID,
			Score:     c.Score,
			Timestamp: now,
		})
	}

	record := domain.RecommendationRecord{
		CustomerID: customerID,
		Items:      items,
		Kind:       domain.RecommendationKindHybrid,
		CreatedAt:  now,
	}

	if err := s.repo.Save(ctx, record, s.retention); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("save recommendations: %w", err)
	}

	return domain.RecommendationSet{
		CustomerID:      customerID,
		Recommendations: candidates,
		CreatedAt:       now,
		Kind:            record.Kind,
	}, nil
}

// LoadLatest returns the newest stored set. ok is false when nothing is
// stored, the payload is corrupt, or none of its products exist anymore.
func (s *Store) LoadLatest(ctx context.Context, customerID string) (domain.RecommendationSet, bool, error) {
	record, err := s.repo.LoadLatest(ctx, customerID)
	if errors.Is(err, domain.ErrCorruptRecommendation) {
		logger.Warn("discarding unreadable recommendation set",
			"trace_id", TraceIDFromContext(ctx),
			"customer_id", customerID,
			"error", err,
		)
		return domain.RecommendationSet{}, false, nil
	}
	if err != nil {
		return domain.RecommendationSet{}, false, fmt.Errorf("load recommendations: %w", err)
	}
	if record == nil {
		return domain.RecommendationSet{}, false, nil
	}

	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		return domain.RecommendationSet{}, false, fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}

	recs := make([]domain.ScoredCandidate, 0, len(record.Items))
	for _, item := range record.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		recs = append(recs, domain.ScoredCandidate{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    p.ProductCategory,
			Price:       p.Price,
			Score:       item.Score,
		})
	}

	if len(recs) == 0 {
		return domain.RecommendationSet{}, false, nil
	}

	return domain.RecommendationSet{
		CustomerID:      customerID,
		Recommendations: recs,
		CreatedAt:       record.CreatedAt,
		Kind:            record.Kind,
	}, true, nil
}

func (s *Store) Invalidate(ctx context.Context, customerID string) error {
	if err := s.repo.DeleteAll(ctx, customerID); err != nil {
		return fmt.Errorf("invalidate recommendations: %w", err)
	}
	return nil
}
