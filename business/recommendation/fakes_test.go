package recommendation

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"customerAgent/domain"
)

type fakeCustomers struct {
	profiles  map[string]domain.CustomerProfile
	segments  map[string]domain.CustomerSegment
	browsing  map[string][]domain.BrowsingHistory
	purchases map[string][]domain.PurchaseHistory
	popular   map[string][]string

	popularCalls int
	err          error
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{
		profiles:  make(map[string]domain.CustomerProfile),
		segments:  make(map[string]domain.CustomerSegment),
		browsing:  make(map[string][]domain.BrowsingHistory),
		purchases: make(map[string][]domain.PurchaseHistory),
		popular:   make(map[string][]string),
	}
}

func (f *fakeCustomers) addCustomer(id string) {
	f.profiles[id] = domain.CustomerProfile{CustomerID: id, FullName: "Customer " + id}
}

func (f *fakeCustomers) GetProfile(_ context.Context, id string) (domain.CustomerProfile, error) {
	if f.err != nil {
		return domain.CustomerProfile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return domain.CustomerProfile{}, domain.ErrCustomerNotFound
	}
	return p, nil
}

func (f *fakeCustomers) GetSegment(_ context.Context, id string) (domain.CustomerSegment, bool, error) {
	s, ok := f.segments[id]
	return s, ok, nil
}

func (f *fakeCustomers) GetBrowsingHistory(_ context.Context, id string, _ int) ([]domain.BrowsingHistory, error) {
	return f.browsing[id], nil
}

func (f *fakeCustomers) GetPurchaseHistory(_ context.Context, id string, _ int) ([]domain.PurchaseHistory, error) {
	return f.purchases[id], nil
}

func (f *fakeCustomers) PopularSegmentCategories(_ context.Context, segment, _ string, limit int) ([]string, error) {
	f.popularCalls++
	cats := f.popular[segment]
	if len(cats) > limit {
		cats = cats[:limit]
	}
	return cats, nil
}

type fakeCatalog struct {
	products []domain.Product
	calls    int
	err      error
}

func (f *fakeCatalog) ListAll(context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeRepo struct {
	mu      sync.Mutex
	records []domain.RecommendationRecord
	nextID  uint64
	saves   int
	loads   int
	corrupt bool
	err     error
}

func (f *fakeRepo) Save(_ context.Context, record domain.RecommendationRecord, keep int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}

	f.saves++
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, record)

	var mine, others []domain.RecommendationRecord
	for _, r := range f.records {
		if r.CustomerID == record.CustomerID {
			mine = append(mine, r)
		} else {
			others = append(others, r)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].ID > mine[j].ID
		}
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	if len(mine) > keep {
		mine = mine[:keep]
	}
	f.records = append(others, mine...)
	return nil
}

func (f *fakeRepo) LoadLatest(_ context.Context, customerID string) (*domain.RecommendationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}

	var latest *domain.RecommendationRecord
	for i := range f.records {
		r := f.records[i]
		if r.CustomerID != customerID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) ||
			(r.CreatedAt.Equal(latest.CreatedAt) && r.ID > latest.ID) {
			latest = &r
		}
	}
	if latest != nil && f.corrupt {
		return nil, domain.ErrCorruptRecommendation
	}
	return latest, nil
}

func (f *fakeRepo) DeleteAll(_ context.Context, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}

	kept := f.records[:0]
	for _, r := range f.records {
		if r.CustomerID != customerID {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeRepo) count(customerID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.records {
		if r.CustomerID == customerID {
			n++
		}
	}
	return n
}

func (f *fakeRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *fakeRepo) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

// gatedCatalog blocks ListAll until release is closed.
type gatedCatalog struct {
	products []domain.Product
	started  chan struct{}
	release  chan struct{}
	once     sync.Once
	calls    atomic.Int32
}

func newGatedCatalog(products []domain.Product) *gatedCatalog {
	return &gatedCatalog{
		products: products,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (g *gatedCatalog) ListAll(ctx context.Context) ([]domain.Product, error) {
	g.calls.Add(1)
	g.once.Do(func() { close(g.started) })

	select {
	case <-g.release:
		return g.products, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func demoCatalog() []domain.Product {
	return []domain.Product{
		{ProductID: 1, ProductName: "Galaxy S22", ProductCategory: "SmartPhone", Price: 799.99, Tags: "samsung phone android camera"},
		{ProductID: 2, ProductName: "iPhone 13", ProductCategory: "SmartPhone", Price: 899.99, Tags: "apple phone ios camera"},
		{ProductID: 3, ProductName: "Google Pixel 6", ProductCategory: "SmartPhone", Price: 699.99, Tags: "google phone android camera photography"},
		{ProductID: 4, ProductName: "MacBook Pro", ProductCategory: "Laptop", Price: 1299.99, Tags: "apple laptop macOS productivity"},
		{ProductID: 5, ProductName: "Dell XPS 13", ProductCategory: "Laptop", Price: 999.99, Tags: "dell laptop windows productivity"},
		{ProductID: 6, ProductName: "Lenovo ThinkPad", ProductCategory: "Laptop", Price: 1099.99, Tags: "lenovo laptop windows business"},
		{ProductID: 7, ProductName: "Premium Yoga Mat", ProductCategory: "Yoga Mat", Price: 45.99, Tags: "yoga fitness exercise mat"},
		{ProductID: 8, ProductName: "Yoga Block Set", ProductCategory: "Yoga", Price: 19.99, Tags: "yoga fitness exercise props"},
		{ProductID: 9, ProductName: "Premium Resistance Bands", ProductCategory: "fitness", Price: 29.99, Tags: "fitness strength training bands home workout"},
		{ProductID: 10, ProductName: "Smart Treadmill", ProductCategory: "fitness", Price: 1499.99, Tags: "fitness cardio treadmill running machine"},
		{ProductID: 11, ProductName: "Adjustable Dumbbells", ProductCategory: "fitness", Price: 299.99, Tags: "fitness strength weights dumbbells"},
		{ProductID: 12, ProductName: "Running Shoes", ProductCategory: "fashion", Price: 89.99, Tags: "shoes running fitness footwear"},
		{ProductID: 13, ProductName: "Casual Sneakers", ProductCategory: "fashion", Price: 59.99, Tags: "shoes casual fashion footwear"},
		{ProductID: 14, ProductName: "Formal Shoes", ProductCategory: "fashion", Price: 129.99, Tags: "shoes formal dress footwear"},
		{ProductID: 15, ProductName: "Fitness Tracker Watch", ProductCategory: "fashion", Price: 149.99, Tags: "watch smartwatch fitness tracker"},
		{ProductID: 16, ProductName: "Designer Jeans", ProductCategory: "fashion", Price: 79.99, Tags: "jeans pants denim fashion"},
	}
}
