package recommendation

import (
	"context"
	"fmt"

	"customerAgent/domain"
)

// aggregateSignal reads everything the scorers need about one customer.
func (e *Engine) aggregateSignal(ctx context.Context, customerID string) (domain.CustomerSignal, error) {
	if _, err := e.customers.GetProfile(ctx, customerID); err != nil {
		return domain.CustomerSignal{}, err
	}

	signal := domain.CustomerSignal{
		CustomerID:    customerID,
		SegmentType:   domain.SegmentStandard,
		AvgOrderValue: 0,
	}

	segment, ok, err := e.customers.GetSegment(ctx, customerID)
	if err != nil {
		return domain.CustomerSignal{}, fmt.Errorf("load segment: %w", err)
	}
	if ok {
		signal.HasSegmentRecord = true
		signal.AvgOrderValue = segment.AvgOrderValue
		if segment.Segment != "" {
			signal.SegmentType = segment.Segment
		}
	}

	browsing, err := e.customers.GetBrowsingHistory(ctx, customerID, e.cfg.BrowsingWindowDays)
	if err != nil {
		return domain.CustomerSignal{}, fmt.Errorf("load browsing history: %w", err)
	}

	signal.BrowsingEvents = make([]string, 0, len(browsing))
	for _, b := range browsing {
		signal.BrowsingEvents = append(signal.BrowsingEvents, b.Category)
	}

	purchases, err := e.customers.GetPurchaseHistory(ctx, customerID, e.cfg.PurchaseWindowDays)
	if err != nil {
		return domain.CustomerSignal{}, fmt.Errorf("load purchase history: %w", err)
	}

	signal.PurchaseEvents = make([]domain.PurchaseSignal, 0, len(purchases))
	for _, p := range purchases {
		signal.PurchaseEvents = append(signal.PurchaseEvents, domain.PurchaseSignal{
			Category: p.ProductCategory,
			Price:    p.Price,
		})
	}

	return signal, nil
}
