package customer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/provider"
	"github.com/amirasaad/corebank/pkg/repository"
)

// Directory resolves customers for the movement service. A replica missing
// locally is fetched from the identity service and stored.
type Directory struct {
	lookup provider.CustomerLookup
	logger *slog.Logger
}

// NewDirectory creates a Directory. A nil lookup disables remote fetches.
func NewDirectory(lookup provider.CustomerLookup, logger *slog.Logger) *Directory {
	return &Directory{
		lookup: lookup,
		logger: logger.With("service", "directory"),
	}
}

// FindCustomer returns the replica for customerID, persisting a minimal one
// in uow's transaction when it has to be fetched.
func (d *Directory) FindCustomer(
	ctx context.Context,
	uow repository.UnitOfWork,
	customerID string,
) (*customer.Customer, error) {
	repo, err := uow.CustomerRepository()
	if err != nil {
		return nil, err
	}
	c, err := repo.GetByCustomerID(ctx, customerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) || d.lookup == nil {
		return nil, err
	}

	log := d.logger.With("customer_id", customerID)
	log.Info("Customer replica missing, fetching from identity service")
	remote, err := d.lookup.FetchCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	c, existing, err := upsert(ctx, repo, remote.CustomerID, remote.Identification, func(c *customer.Customer) {
		c.CustomerID = remote.CustomerID
		c.FirstName = remote.FirstName
		c.LastName = remote.LastName
		if remote.Identification != "" {
			c.Identification = remote.Identification
		}
	})
	if err != nil {
		return nil, err
	}
	log.Info("Customer replica stored", "existing", existing)
	return c, nil
}
