package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customerAgent/business/recommendation"
	"customerAgent/domain"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

var _ recommendation.RecommendationRepository = (*RecommendationRepository)(nil)

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

type recommendationRow struct {
	ID              uint64         `gorm:"column:recommendation_id;primaryKey;autoIncrement"`
	CustomerID      string         `gorm:"column:customer_id;index:idx_reco_customer_created;not null"`
	Recommendations datatypes.JSON `gorm:"column:recommendations;type:jsonb"`
	Kind            string         `gorm:"column:recommendation_type;type:text"`
	CreatedAt       time.Time      `gorm:"column:created_at;index:idx_reco_customer_created"`
}

func (recommendationRow) TableName() string {
	return "customer_recommendations"
}

// Save inserts record and deletes every older set of the customer beyond
// the newest keep, in one transaction.
func (r *RecommendationRepository) Save(ctx context.Context, record domain.RecommendationRecord, keep int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	row := recommendationRow{
		CustomerID:      record.CustomerID,
		Recommendations: datatypes.JSON(raw),
		Kind:            record.Kind,
		CreatedAt:       record.CreatedAt,
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert recommendations: %w", err)
		}

		keepIDs := tx.Model(&recommendationRow{}).
			Select("recommendation_id").
			Where("customer_id = ?", record.CustomerID).
			Order("created_at DESC, recommendation_id DESC").
			Limit(keep)

		if err := tx.
			Where("customer_id = ? AND recommendation_id NOT IN (?)", record.CustomerID, keepIDs).
			Delete(&recommendationRow{}).Error; err != nil {
			return fmt.Errorf("failed to evict old recommendations: %w", err)
		}

		return nil
	})
}

func (r *RecommendationRepository) LoadLatest(ctx context.Context, customerID string) (*domain.RecommendationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row recommendationRow
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, recommendation_id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer_recommendations: %w", err)
	}

	items, err := decodeItems(row.Recommendations)
	if err != nil {
		return nil, err
	}

	return &domain.RecommendationRecord{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Items:      items,
		Kind:       row.Kind,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (r *RecommendationRepository) DeleteAll(ctx context.Context, customerID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&recommendationRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}

	return nil
}

func decodeItems(raw []byte) ([]domain.StoredCandidate, error) {
	var items []domain.StoredCandidate
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecommendation, err)
	}
	return items, nil
}
