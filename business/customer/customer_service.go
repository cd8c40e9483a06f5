package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customerAgent/domain"
	"customerAgent/pkg/logger"
)

const recentEvents = 10

const (
	SeasonRecent     = "Recent"
	SeasonSemiRecent = "Semi-Recent"
	SeasonInactive   = "Inactive"
	SeasonUnknown    = "Unknown"
)

const (
	MessageBrowsingUpdated = "Browsing history updated successfully"
	MessageBehaviorUpdated = "Behavior updated successfully"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	UpsertProfile(ctx context.Context, profile *domain.CustomerProfile) error
	GetProfile(ctx context.Context, customerID string) (domain.CustomerProfile, error)

	AddAddresses(ctx context.Context, addresses []domain.CustomerAddress) error
	ListAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error)

	GetSegment(ctx context.Context, customerID string) (domain.CustomerSegment, bool, error)
	UpsertSegment(ctx context.Context, segment domain.CustomerSegment) error

	RecordBrowsing(ctx context.Context, event *domain.BrowsingHistory) error
	RecentBrowsing(ctx context.Context, customerID string, limit int) ([]domain.BrowsingHistory, error)

	RecordPurchases(ctx context.Context, purchases []domain.PurchaseHistory) error
	GetPurchaseHistory(ctx context.Context, customerID string, windowDays int) ([]domain.PurchaseHistory, error)
	RecentPurchases(ctx context.Context, customerID string, limit int) ([]domain.PurchaseHistory, error)
}

// InteractionNotifier is told about every recorded browse or purchase.
type InteractionNotifier interface {
	OnInteraction(ctx context.Context, customerID string, kind string, payload any) (domain.InteractionAck, error)
}

type customerService struct {
	customerRepo CustomerRepository
	notifier     InteractionNotifier
	now          func() time.Time
}

func NewCustomerService(customerRepo CustomerRepository, notifier InteractionNotifier) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, profile *domain.CustomerProfile) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create customer")
		return fmt.Errorf("context error: %w", err)
	}

	if profile.CustomerID == "" {
		return errors.New("customer id is required")
	}

	if err := s.customerRepo.UpsertProfile(ctx, profile); err != nil {
		logger.Error("Failed to create customer", err)
		return err
	}

	return nil
}

func (s *customerService) AddAddresses(ctx context.Context, addresses []domain.CustomerAddress) (int, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when add addresses")
		return 0, fmt.Errorf("context error: %w", err)
	}

	for _, a := range addresses {
		if a.AddressType != domain.AddressTypeShipping && a.AddressType != domain.AddressTypeBilling {
			return 0, fmt.Errorf("invalid address type %q", a.AddressType)
		}
	}

	if err := s.customerRepo.AddAddresses(ctx, addresses); err != nil {
		logger.Error("Failed to add addresses", err)
		return 0, err
	}

	return len(addresses), nil
}

// GetProfile returns the profile with addresses, the latest browsing and
// purchase events and the segment summary. Segment is nil when the customer
// has never been segmented.
func (s *customerService) GetProfile(ctx context.Context, customerID string) (domain.CustomerDetail, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get customer profile")
		return domain.CustomerDetail{}, fmt.Errorf("context error: %w", err)
	}

	profile, err := s.customerRepo.GetProfile(ctx, customerID)
	if err != nil {
		return domain.CustomerDetail{}, err
	}

	addresses, err := s.customerRepo.ListAddresses(ctx, customerID)
	if err != nil {
		return domain.CustomerDetail{}, err
	}

	browsing, err := s.customerRepo.RecentBrowsing(ctx, customerID, recentEvents)
	if err != nil {
		return domain.CustomerDetail{}, err
	}

	recent, err := s.customerRepo.RecentPurchases(ctx, customerID, recentEvents)
	if err != nil {
		return domain.CustomerDetail{}, err
	}

	detail := domain.CustomerDetail{
		Profile:         profile,
		Addresses:       addresses,
		BrowsingHistory: browsing,
		PurchaseHistory: recent,
	}

	segment, ok, err := s.customerRepo.GetSegment(ctx, customerID)
	if err != nil {
		return domain.CustomerDetail{}, err
	}
	if !ok {
		return detail, nil
	}

	all, err := s.customerRepo.GetPurchaseHistory(ctx, customerID, 0)
	if err != nil {
		return domain.CustomerDetail{}, err
	}

	detail.Segment = summarize(segment, all)
	return detail, nil
}

// UpdateBehavior records a browsed category, or else a batch of purchases
// followed by a segment recompute. Each recorded interaction is forwarded to
// the notifier.
func (s *customerService) UpdateBehavior(ctx context.Context, update domain.BehaviorUpdate) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update behavior")
		return "", fmt.Errorf("context error: %w", err)
	}

	if _, err := s.customerRepo.GetProfile(ctx, update.CustomerID); err != nil {
		return "", err
	}

	now := s.now()

	if update.BrowsingCategory != "" {
		event := &domain.BrowsingHistory{
			CustomerID: update.CustomerID,
			Category:   update.BrowsingCategory,
			Timestamp:  now,
		}
		if err := s.customerRepo.RecordBrowsing(ctx, event); err != nil {
			logger.Error("Failed to record browsing", err)
			return "", err
		}

		if err := s.notify(ctx, update.CustomerID, domain.InteractionBrowsing, map[string]any{"category": update.BrowsingCategory}); err != nil {
			return "", err
		}

		return MessageBrowsingUpdated, nil
	}

	purchases := make([]domain.PurchaseHistory, 0, len(update.Purchases))
	for _, p := range update.Purchases {
		p.CustomerID = update.CustomerID
		if p.OrderDate.IsZero() {
			p.OrderDate = now
		}
		purchases = append(purchases, p)
	}

	if err := s.customerRepo.RecordPurchases(ctx, purchases); err != nil {
		logger.Error("Failed to record purchases", err)
		return "", err
	}

	all, err := s.customerRepo.GetPurchaseHistory(ctx, update.CustomerID, 0)
	if err != nil {
		return "", err
	}

	if segment, ok := ComputeSegment(update.CustomerID, all, now); ok {
		if err := s.customerRepo.UpsertSegment(ctx, segment); err != nil {
			logger.Error("Failed to update customer segment", err)
			return "", err
		}
	}

	if len(purchases) > 0 {
		if err := s.notify(ctx, update.CustomerID, domain.InteractionPurchase, map[string]any{"items": purchases}); err != nil {
			return "", err
		}
	}

	return MessageBehaviorUpdated, nil
}

func (s *customerService) notify(ctx context.Context, customerID, kind string, payload any) error {
	if s.notifier == nil {
		return nil
	}
	if _, err := s.notifier.OnInteraction(ctx, customerID, kind, payload); err != nil {
		logger.Error("Failed to process interaction", "customer_id", customerID, "kind", kind, "error", err)
		return err
	}
	return nil
}

// ComputeSegment derives the segment of a customer from the full purchase
// history. ok is false for a customer without purchases.
func ComputeSegment(customerID string, purchases []domain.PurchaseHistory, now time.Time) (domain.CustomerSegment, bool) {
	if len(purchases) == 0 {
		return domain.CustomerSegment{}, false
	}

	total := 0.0
	var last time.Time
	for _, p := range purchases {
		total += p.Price
		if p.OrderDate.After(last) {
			last = p.OrderDate
		}
	}
	avg := total / float64(len(purchases))

	segment := domain.SegmentBudget
	switch {
	case avg > 100:
		segment = domain.SegmentPremium
	case avg >= 50:
		segment = domain.SegmentRegular
	}

	season := SeasonInactive
	switch {
	case !last.Before(now.AddDate(0, -3, 0)):
		season = SeasonRecent
	case !last.Before(now.AddDate(0, -6, 0)):
		season = SeasonSemiRecent
	}

	return domain.CustomerSegment{
		CustomerID:       customerID,
		Segment:          segment,
		AvgOrderValue:    avg,
		LastActiveSeason: season,
	}, true
}

func summarize(segment domain.CustomerSegment, purchases []domain.PurchaseHistory) *domain.SegmentSummary {
	summary := &domain.SegmentSummary{
		Segment:          segment.Segment,
		AvgOrderValue:    segment.AvgOrderValue,
		LastActiveSeason: segment.LastActiveSeason,
		TotalOrders:      len(purchases),
	}
	if summary.Segment == "" {
		summary.Segment = domain.SegmentStandard
	}
	if summary.LastActiveSeason == "" {
		summary.LastActiveSeason = SeasonUnknown
	}

	for _, p := range purchases {
		summary.TotalSpent += p.Price
		if summary.LastPurchaseDate == nil || p.OrderDate.After(*summary.LastPurchaseDate) {
			d := p.OrderDate
			summary.LastPurchaseDate = &d
		}
	}

	return summary
}
