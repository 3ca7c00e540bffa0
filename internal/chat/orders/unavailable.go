package orders

import (
	"context"
	"fmt"

	"food-assistant/internal/models"
)

// UnavailableRepository fails every lookup. It stands in when no order
// backend is configured so tracking replies explain the outage.
type UnavailableRepository struct{}

func (UnavailableRepository) FindOrderByID(context.Context, string) (*models.OrderSummary, error) {
	return nil, fmt.Errorf("%w: order service is not configured", ErrOrderLookupFailed)
}

func (UnavailableRepository) FindLatestOrderForUser(context.Context, string) (*models.OrderSummary, error) {
	return nil, fmt.Errorf("%w: order service is not configured", ErrOrderLookupFailed)
}
