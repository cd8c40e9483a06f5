package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customerAgent/business/recommendation"
	"customerAgent/domain"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// storedSet is the JSON document kept in each list entry.
type storedSet struct {
	ID         uint64                   `json:"id"`
	CustomerID string                   `json:"customer_id"`
	Items      []domain.StoredCandidate `json:"recommendations"`
	Kind       string                   `json:"recommendation_type"`
	CreatedAt  time.Time                `json:"created_at"`
}

// RecommendationRepository keeps the sets of a customer in a Redis list,
// newest at the head.
type RecommendationRepository struct {
	client *redis.Client
}

var _ recommendation.RecommendationRepository = (*RecommendationRepository)(nil)

func NewRecommendationRepository(client *redis.Client) *RecommendationRepository {
	return &RecommendationRepository{
		client: client,
	}
}

func setsKey(customerID string) string {
	// key format: "reco:customer:{customer_id}"
	return fmt.Sprintf("reco:customer:%s", customerID)
}

func seqKey(customerID string) string {
	return fmt.Sprintf("reco:seq:%s", customerID)
}

func (r *RecommendationRepository) Save(ctx context.Context, record domain.RecommendationRecord, keep int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	id, err := r.client.Incr(ctx, seqKey(record.CustomerID)).Uint64()
	if err != nil {
		return fmt.Errorf("failed to allocate recommendation id: %w", err)
	}
	record.ID = id

	payload, err := encodeSet(record)
	if err != nil {
		return err
	}

	key := setsKey(record.CustomerID)

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(keep-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) LoadLatest(ctx context.Context, customerID string) (*domain.RecommendationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := r.client.LIndex(ctx, setsKey(customerID), 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendations from Redis: %w", err)
	}

	record, err := decodeSet(raw)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *RecommendationRepository) DeleteAll(ctx context.Context, customerID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.client.Del(ctx, setsKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete recommendations from Redis: %w", err)
	}

	return nil
}

func encodeSet(record domain.RecommendationRecord) ([]byte, error) {
	raw, err := json.Marshal(storedSet{
		ID:         record.ID,
		CustomerID: record.CustomerID,
		Items:      record.Items,
		Kind:       record.Kind,
		CreatedAt:  record.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	return raw, nil
}

func decodeSet(raw []byte) (domain.RecommendationRecord, error) {
	var set storedSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.RecommendationRecord{}, fmt.Errorf("%w: %v", domain.ErrCorruptRecommendation, err)
	}

	return domain.RecommendationRecord{
		ID:         set.ID,
		CustomerID: set.CustomerID,
		Items:      set.Items,
		Kind:       set.Kind,
		CreatedAt:  set.CreatedAt,
	}, nil
}
