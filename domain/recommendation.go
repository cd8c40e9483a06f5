package domain

import "time"

const RecommendationKindHybrid = "hybrid"

const (
	InteractionBrowsing = "browsing"
	InteractionPurchase = "purchase"
)

type PurchaseSignal struct {
	Category string
	Price    float64
}

// CustomerSignal is the time-windowed view of a customer used for scoring.
// Browsing and purchase events are ordered newest first.
type CustomerSignal struct {
	CustomerID    string
	SegmentType   string
	AvgOrderValue float64

	// HasSegmentRecord is false when SegmentType is the default.
	HasSegmentRecord bool

	BrowsingEvents []string
	PurchaseEvents []PurchaseSignal
}

// CategoryWeights maps a lower-cased category to its normalized weight.
type CategoryWeights map[string]float64

type ScoredCandidate struct {
	ProductID   uint64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Score       float64 `json:"score"`
}

type RecommendationSet struct {
	CustomerID      string            `json:"customer_id"`
	Recommendations []ScoredCandidate `json:"recommendations"`
	CreatedAt       time.Time         `json:"timestamp"`
	Kind            string            `json:"-"`
}

// StoredCandidate is one persisted entry of a recommendation set.
type StoredCandidate struct {
	ProductID uint64    `json:"product_id"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type RecommendationRecord struct {
	ID         uint64
	CustomerID string
	Items      []StoredCandidate
	Kind       string
	CreatedAt  time.Time
}

type InteractionAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
