package recommendation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"customerAgent/domain"
	"customerAgent/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// ---- Repository interfaces ----

type CustomerStore interface {
	GetProfile(ctx context.Context, customerID string) (domain.CustomerProfile, error)
	GetSegment(ctx context.Context, customerID string) (domain.CustomerSegment, bool, error)
	GetBrowsingHistory(ctx context.Context, customerID string, windowDays int) ([]domain.BrowsingHistory, error)
	GetPurchaseHistory(ctx context.Context, customerID string, windowDays int) ([]domain.PurchaseHistory, error)

	// PopularSegmentCategories ranks the categories purchased by other
	// customers of the segment, most purchases first.
	PopularSegmentCategories(ctx context.Context, segment, excludeCustomerID string, limit int) ([]string, error)
}

type ProductCatalog interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
}

type RecommendationRepository interface {
	// Save appends record and keeps only the newest keep records of the customer.
	Save(ctx context.Context, record domain.RecommendationRecord, keep int) error
	// LoadLatest returns nil when the customer has no stored record.
	LoadLatest(ctx context.Context, customerID string) (*domain.RecommendationRecord, error)
	DeleteAll(ctx context.Context, customerID string) error
}

// ---- Engine ----

type Engine struct {
	customers CustomerStore
	catalog   ProductCatalog
	store     *Store
	cfg       Config

	clock func() time.Time

	rng   *rand.Rand
	rngMu sync.Mutex

	inflight singleflight.Group
}

type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithRand replaces the random source of the collaborative picker.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

func NewEngine(
	customers CustomerStore,
	catalog ProductCatalog,
	repo RecommendationRepository,
	cfg Config,
	opts ...Option,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		customers: customers,
		catalog:   catalog,
		cfg:       cfg,
		clock:     time.Now,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // diversity picks, not security
	}

	for _, opt := range opts {
		opt(e)
	}

	e.store = NewStore(repo, catalog, cfg.RetentionCap, e.clock)

	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Generate builds a fresh recommendation set from the customer's current
// signals and persists it. It fails with domain.ErrCustomerNotFound for an
// unknown customer.
func (e *Engine) Generate(ctx context.Context, customerID string, limit int) (domain.RecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	signal, err := e.aggregateSignal(ctx, customerID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	weights := ComputeCategoryWeights(e.cfg, signal)

	products, err := e.catalog.ListAll(ctx)
	if err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("load catalog: %w", err)
	}

	content := ScoreContent(e.cfg, weights, products, signal.SegmentType, shareOf(limit, e.cfg.ContentShare))

	collaborative, err := e.suggestCollaborative(ctx, signal, products, shareOf(limit, e.cfg.CollaborativeShare))
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	merged := MergeCandidates(content, collaborative, limit)

	logger.Debug("recommendation_generate",
		"trace_id", TraceIDFromContext(ctx),
		"customer_id", customerID,
		"segment", signal.SegmentType,
		"limit", limit,
		"categories", len(weights),
		"content", len(content),
		"collaborative", len(collaborative),
		"merged", len(merged),
	)

	RecommendationGeneratedTotal.Inc()

	// empty results are returned but never cached
	if len(merged) == 0 {
		return domain.RecommendationSet{
			CustomerID:      customerID,
			Recommendations: merged,
			CreatedAt:       e.clock(),
			Kind:            domain.RecommendationKindHybrid,
		}, nil
	}

	return e.store.Save(ctx, customerID, merged)
}

// GetOrGenerate serves the newest stored set while it is younger than the
// freshness window and regenerates otherwise. Concurrent misses for the same
// customer and limit share one generation.
func (e *Engine) GetOrGenerate(ctx context.Context, customerID string, limit int) (domain.RecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	cached, ok, err := e.store.LoadLatest(ctx, customerID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	switch {
	case !ok:
		RecommendationCacheLookupsTotal.WithLabelValues("miss").Inc()
	case e.clock().Sub(cached.CreatedAt) >= e.cfg.FreshnessWindow:
		RecommendationCacheLookupsTotal.WithLabelValues("stale").Inc()
	default:
		RecommendationCacheLookupsTotal.WithLabelValues("hit").Inc()
		if len(cached.Recommendations) > limit {
			cached.Recommendations = cached.Recommendations[:limit]
		}
		return cached, nil
	}

	// the shared generation outlives any single caller; each caller still
	// gives up on its own context
	key := fmt.Sprintf("%s|%d", customerID, limit)
	ch := e.inflight.DoChan(key, func() (any, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.GenerateTimeout)
		defer cancel()
		return e.Generate(genCtx, customerID, limit)
	})

	select {
	case <-ctx.Done():
		return domain.RecommendationSet{}, fmt.Errorf("context error: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.RecommendationSet{}, res.Err
		}

		if res.Shared {
			logger.Debug("recommendation_generate_shared",
				"trace_id", TraceIDFromContext(ctx),
				"customer_id", customerID,
			)
		}

		return res.Val.(domain.RecommendationSet), nil
	}
}

// OnInteraction drops every stored set of the customer so the next read
// regenerates from fresh signals.
func (e *Engine) OnInteraction(
	ctx context.Context,
	customerID string,
	kind string,
	payload any,
) (domain.InteractionAck, error) {

	if err := ctx.Err(); err != nil {
		return domain.InteractionAck{}, fmt.Errorf("context error: %w", err)
	}

	if err := e.store.Invalidate(ctx, customerID); err != nil {
		return domain.InteractionAck{}, err
	}

	RecommendationInvalidationsTotal.WithLabelValues(kind).Inc()

	logger.Debug("recommendation_invalidate",
		"trace_id", TraceIDFromContext(ctx),
		"customer_id", customerID,
		"kind", kind,
		"payload", payload,
	)

	return domain.InteractionAck{
		Status:  "success",
		Message: fmt.Sprintf("Processed new %s interaction for customer %s", kind, customerID),
	}, nil
}

// shareOf returns ceil(limit * share). The epsilon keeps exact products such
// as 10 * 0.7 from rounding up to the next integer.
func shareOf(limit int, share float64) int {
	if limit <= 0 || share <= 0 {
		return 0
	}
	return int(math.Ceil(float64(limit)*share - 1e-9))
}

func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}
