package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"customerAgent/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	customers *fakeCustomers
	catalog   *fakeCatalog
	repo      *fakeRepo
	clock     *fakeClock
	engine    *Engine
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	f := &engineFixture{
		customers: newFakeCustomers(),
		catalog:   &fakeCatalog{products: demoCatalog()},
		repo:      &fakeRepo{},
		clock:     newFakeClock(),
	}

	f.customers.addCustomer("C1")
	f.customers.segments["C1"] = domain.CustomerSegment{CustomerID: "C1", Segment: "Premium", AvgOrderValue: 200}
	f.customers.browsing["C1"] = []domain.BrowsingHistory{{Category: "SmartPhone"}, {Category: "Laptop"}}
	f.customers.purchases["C1"] = []domain.PurchaseHistory{{ProductName: "MacBook Pro", ProductCategory: "Laptop", Price: 1300}}
	f.customers.popular["Premium"] = []string{"fitness", "fashion", "Yoga"}

	f.engine = newTestEngine(t, f.customers, f.catalog, f.repo, f.clock)
	return f
}

func assertWellFormed(t *testing.T, set domain.RecommendationSet, limit int) {
	t.Helper()

	assert.LessOrEqual(t, len(set.Recommendations), limit)

	seen := make(map[uint64]bool)
	for i, c := range set.Recommendations {
		assert.False(t, seen[c.ProductID], "duplicate product %d", c.ProductID)
		seen[c.ProductID] = true
		assert.GreaterOrEqual(t, c.Score, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, set.Recommendations[i-1].Score, c.Score)
		}
	}
}

func TestGenerate_UnknownCustomer(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Generate(context.Background(), "nobody", 10)

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.Zero(t, f.repo.saves)
}

func TestGenerate_HybridPipeline(t *testing.T) {
	f := newEngineFixture(t)

	set, err := f.engine.Generate(context.Background(), "C1", 10)
	require.NoError(t, err)

	assertWellFormed(t, set, 10)
	assert.Equal(t, "C1", set.CustomerID)
	assert.Equal(t, domain.RecommendationKindHybrid, set.Kind)
	assert.Equal(t, f.clock.Now(), set.CreatedAt)
	assert.Equal(t, 1, f.repo.saves)

	// 3 laptops + 3 phones from content, 3 collaborative picks
	require.Len(t, set.Recommendations, 9)

	// laptop dominates the weights and premium boosts every laptop
	for _, c := range set.Recommendations[:3] {
		assert.Equal(t, "Laptop", c.Category)
	}

	collaborative := 0
	for _, c := range set.Recommendations {
		if c.Score == 0.5 {
			collaborative++
		}
	}
	assert.Equal(t, 3, collaborative)
}

func TestGenerate_LimitIsRespected(t *testing.T) {
	f := newEngineFixture(t)

	for limit := 1; limit <= 15; limit++ {
		set, err := f.engine.Generate(context.Background(), "C1", limit)
		require.NoError(t, err)
		assertWellFormed(t, set, limit)
	}
}

func TestGenerate_DefaultLimit(t *testing.T) {
	f := newEngineFixture(t)

	set, err := f.engine.Generate(context.Background(), "C1", 0)
	require.NoError(t, err)
	assertWellFormed(t, set, DefaultConfig().DefaultLimit)
}

func TestGenerate_NoSignalNoSegment(t *testing.T) {
	f := newEngineFixture(t)
	f.customers.addCustomer("C2")

	set, err := f.engine.Generate(context.Background(), "C2", 10)
	require.NoError(t, err)

	assert.Empty(t, set.Recommendations)
	assert.Zero(t, f.repo.saves, "empty sets are not stored")
}

func TestGenerate_CollaborativeOnly(t *testing.T) {
	f := newEngineFixture(t)
	f.customers.addCustomer("C3")
	f.customers.segments["C3"] = domain.CustomerSegment{CustomerID: "C3", Segment: "Premium"}

	set, err := f.engine.Generate(context.Background(), "C3", 10)
	require.NoError(t, err)

	require.Len(t, set.Recommendations, 3)
	for _, c := range set.Recommendations {
		assert.Equal(t, 0.5, c.Score)
	}
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	f := newEngineFixture(t)
	f.catalog.products = nil

	set, err := f.engine.Generate(context.Background(), "C1", 10)
	require.NoError(t, err)
	assert.Empty(t, set.Recommendations)
}

func TestGenerate_CatalogFailure(t *testing.T) {
	f := newEngineFixture(t)
	f.catalog.err = errors.New("db down")

	_, err := f.engine.Generate(context.Background(), "C1", 10)
	assert.ErrorIs(t, err, f.catalog.err)
}

func TestGenerate_CanceledContext(t *testing.T) {
	f := newEngineFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.engine.Generate(ctx, "C1", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetOrGenerate_FreshSetIsReused(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	first, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)

	f.clock.Advance(23*time.Hour + 59*time.Minute)

	second, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, f.repo.saves)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestGetOrGenerate_StaleSetIsRegenerated(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	first, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)

	second, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, f.repo.saves)
	assert.True(t, second.CreatedAt.After(first.CreatedAt))
}

func TestGetOrGenerate_CachedSetTruncatedToLimit(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)

	set, err := f.engine.GetOrGenerate(ctx, "C1", 3)
	require.NoError(t, err)

	assert.Len(t, set.Recommendations, 3)
	assert.Equal(t, 1, f.repo.saves)
}

func TestGetOrGenerate_UnknownCustomer(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.GetOrGenerate(context.Background(), "nobody", 10)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestGetOrGenerate_CorruptSetIsRegenerated(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)
	f.repo.corrupt = true

	_, err = f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.saves)
}

func TestOnInteraction_ForcesRegeneration(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)

	ack, err := f.engine.OnInteraction(ctx, "C1", domain.InteractionBrowsing, map[string]any{"category": "fitness"})
	require.NoError(t, err)
	assert.Equal(t, "success", ack.Status)
	assert.Equal(t, "Processed new browsing interaction for customer C1", ack.Message)
	assert.Zero(t, f.repo.count("C1"))

	// the new browse now leads the signal
	f.customers.browsing["C1"] = append([]domain.BrowsingHistory{{Category: "fitness"}}, f.customers.browsing["C1"]...)

	_, err = f.engine.GetOrGenerate(ctx, "C1", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.saves)
}

func TestOnInteraction_StorageFailure(t *testing.T) {
	f := newEngineFixture(t)
	f.repo.err = errors.New("write failed")

	_, err := f.engine.OnInteraction(context.Background(), "C1", domain.InteractionPurchase, nil)
	assert.ErrorIs(t, err, f.repo.err)
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentShare = 1.5

	_, err := NewEngine(newFakeCustomers(), &fakeCatalog{}, &fakeRepo{}, cfg)
	assert.Error(t, err)
}

func TestShareOf(t *testing.T) {
	cases := []struct {
		limit int
		share float64
		want  int
	}{
		{10, 0.7, 7},
		{10, 0.3, 3},
		{1, 0.7, 1},
		{1, 0.3, 1},
		{3, 0.7, 3},
		{7, 0.3, 3},
		{20, 0.3, 6},
		{0, 0.7, 0},
		{10, 0, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, shareOf(tc.limit, tc.share), "limit=%d share=%v", tc.limit, tc.share)
	}
}
