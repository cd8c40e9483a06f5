package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customerAgent/business/customer"
	"customerAgent/business/recommendation"
	"customerAgent/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct {
	DB *gorm.DB
}

var (
	_ recommendation.CustomerStore = (*CustomerRepository)(nil)
	_ customer.CustomerRepository  = (*CustomerRepository)(nil)
)

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// ---- Profiles ----

func (r *CustomerRepository) UpsertProfile(ctx context.Context, profile *domain.CustomerProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}},
			UpdateAll: true,
		},
	).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to upsert customer profile: %w", err)
	}

	return nil
}

func (r *CustomerRepository) GetProfile(ctx context.Context, customerID string) (domain.CustomerProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomerProfile{}, fmt.Errorf("context error: %w", err)
	}

	var profile domain.CustomerProfile
	err := r.DB.WithContext(ctx).First(&profile, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CustomerProfile{}, domain.ErrCustomerNotFound
	}
	if err != nil {
		return domain.CustomerProfile{}, fmt.Errorf("failed to find customer profile: %w", err)
	}

	return profile, nil
}

// ---- Addresses ----

func (r *CustomerRepository) AddAddresses(ctx context.Context, addresses []domain.CustomerAddress) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(addresses) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&addresses).Error; err != nil {
		return fmt.Errorf("failed to add addresses: %w", err)
	}

	return nil
}

func (r *CustomerRepository) ListAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var addresses []domain.CustomerAddress
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("address_id").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to find addresses: %w", err)
	}

	return addresses, nil
}

// ---- Segments ----

func (r *CustomerRepository) GetSegment(ctx context.Context, customerID string) (domain.CustomerSegment, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomerSegment{}, false, fmt.Errorf("context error: %w", err)
	}

	var segment domain.CustomerSegment
	err := r.DB.WithContext(ctx).First(&segment, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CustomerSegment{}, false, nil
	}
	if err != nil {
		return domain.CustomerSegment{}, false, fmt.Errorf("failed to find customer segment: %w", err)
	}

	return segment, true, nil
}

func (r *CustomerRepository) UpsertSegment(ctx context.Context, segment domain.CustomerSegment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"customer_segment", "avg_order_value", "last_active_season"}),
		}).
		Create(&segment).Error
}

type segmentCategoryRow struct {
	ProductCategory string
	Purchases       int64
}

func (r *CustomerRepository) PopularSegmentCategories(
	ctx context.Context,
	segment string,
	excludeCustomerID string,
	limit int,
) ([]string, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []string{}, nil
	}

	var rows []segmentCategoryRow
	err := r.DB.WithContext(ctx).
		Table("purchase_history AS ph").
		Select("ph.product_category, COUNT(*) AS purchases").
		Joins("JOIN customer_segments cs ON cs.customer_id = ph.customer_id").
		Where("cs.customer_segment = ? AND ph.customer_id <> ?", segment, excludeCustomerID).
		Group("ph.product_category").
		Order("purchases DESC, ph.product_category").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank segment categories: %w", err)
	}

	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.ProductCategory)
	}

	return categories, nil
}

// ---- Browsing ----

func (r *CustomerRepository) RecordBrowsing(ctx context.Context, event *domain.BrowsingHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record browsing event: %w", err)
	}

	return nil
}

// GetBrowsingHistory returns the events of the last windowDays, newest first.
func (r *CustomerRepository) GetBrowsingHistory(ctx context.Context, customerID string, windowDays int) ([]domain.BrowsingHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	since := time.Now().AddDate(0, 0, -windowDays)

	var events []domain.BrowsingHistory
	if err := r.DB.WithContext(ctx).
		Where(`customer_id = ? AND "timestamp" >= ?`, customerID, since).
		Order(`"timestamp" DESC, history_id DESC`).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to find browsing history: %w", err)
	}

	return events, nil
}

func (r *CustomerRepository) RecentBrowsing(ctx context.Context, customerID string, limit int) ([]domain.BrowsingHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.BrowsingHistory
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order(`"timestamp" DESC, history_id DESC`).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to find browsing history: %w", err)
	}

	return events, nil
}

// ---- Purchases ----

func (r *CustomerRepository) RecordPurchases(ctx context.Context, purchases []domain.PurchaseHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(purchases) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&purchases).Error; err != nil {
		return fmt.Errorf("failed to record purchases: %w", err)
	}

	return nil
}

// GetPurchaseHistory returns the purchases of the last windowDays, newest first.
// A non-positive window returns the whole history.
func (r *CustomerRepository) GetPurchaseHistory(ctx context.Context, customerID string, windowDays int) ([]domain.PurchaseHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("customer_id = ?", customerID)
	if windowDays > 0 {
		q = q.Where("order_date >= ?", time.Now().AddDate(0, 0, -windowDays))
	}

	var purchases []domain.PurchaseHistory
	if err := q.Order("order_date DESC, order_id DESC").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to find purchase history: %w", err)
	}

	return purchases, nil
}

func (r *CustomerRepository) RecentPurchases(ctx context.Context, customerID string, limit int) ([]domain.PurchaseHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var purchases []domain.PurchaseHistory
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date DESC, order_id DESC").
		Limit(limit).
		Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to find purchase history: %w", err)
	}

	return purchases, nil
}
