package provider

import (
	"context"

	"github.com/amirasaad/corebank/pkg/dto"
)

// CustomerLookup fetches a customer from the identity service. Any failure,
// including an unknown customer, is reported as domain.ErrIntegration.
type CustomerLookup interface {
	FetchCustomer(ctx context.Context, customerID string) (*dto.CustomerRead, error)
}
