// Package customer keeps the movement service's customer replicas in step
// with the identity service, either from lifecycle events or by asking the
// identity service directly.
package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
)

// Reconciler applies customer lifecycle events to the local replica.
type Reconciler struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(uow repository.UnitOfWork, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		uow:    uow,
		logger: logger.With("service", "reconciler"),
	}
}

// HandleEvent dispatches evt by action. Unknown actions are logged and
// dropped. The returned error decides whether the delivery is rejected.
func (r *Reconciler) HandleEvent(ctx context.Context, evt events.Event) error {
	log := r.logger.With("event_id", evt.ID(), "action", evt.Type())

	var err error
	switch e := evt.(type) {
	case *events.CustomerCreated:
		err = r.UpsertFromSnapshot(ctx, e.Snapshot())
	case *events.CustomerModified:
		err = r.UpsertFromSnapshot(ctx, e.Snapshot())
	case *events.CustomerDeleted:
		err = r.CascadeDeactivate(ctx, e.CustomerID)
	default:
		log.Warn("Unsupported customer event ignored")
		return nil
	}
	if err != nil {
		log.Error("Customer event failed", "error", err)
		return err
	}
	log.Info("Customer event applied")
	return nil
}

// UpsertFromSnapshot creates or overwrites the replica described by s. The
// row is found by customer id first and by identification second; a row
// found by identification adopts the new customer id.
func (r *Reconciler) UpsertFromSnapshot(ctx context.Context, s customer.Snapshot) error {
	if s.CustomerID == "" {
		return fmt.Errorf("%w: customerId is required", domain.ErrInvalidArgs)
	}
	return r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		_, _, err = upsert(ctx, repo, s.CustomerID, s.Identification, func(c *customer.Customer) {
			if c.CustomerID != s.CustomerID {
				r.logger.Info("Replica adopted new customer id",
					"identification", s.Identification, "from", c.CustomerID, "to", s.CustomerID)
			}
			c.Apply(s)
		})
		return err
	})
}

// CascadeDeactivate marks every account of the customer INACTIVE in a single
// statement. The customer row and movements are left untouched.
func (r *Reconciler) CascadeDeactivate(ctx context.Context, customerID string) error {
	return r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err := customers.GetByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		n, err := accounts.SetStatusByCustomer(ctx, c.ID, account.StatusInactive)
		if err != nil {
			return err
		}
		r.logger.Info("Customer accounts deactivated", "customer_id", customerID, "accounts", n)
		return nil
	})
}

// Handler exposes HandleEvent as a bus handler.
func (r *Reconciler) Handler() eventbus.HandlerFunc {
	return r.HandleEvent
}

// resolve finds the replica for customerID, falling back to identification.
// When neither matches it returns a fresh unsaved replica and existing=false.
func resolve(
	ctx context.Context,
	repo repository.CustomerRepository,
	customerID, identification string,
) (c *customer.Customer, existing bool, err error) {
	c, err = repo.GetByCustomerID(ctx, customerID)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, false, err
	}
	c, err = repo.GetByIdentification(ctx, identification)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, false, err
	}
	return customer.NewReplica(customerID), false, nil
}

// maxUpsertAttempts bounds how often an insert that collided with a
// concurrently committed replica is retried against that row.
const maxUpsertAttempts = 3

// upsert resolves the replica, lets apply overwrite its fields and stores it.
// When the insert of a new replica collides with a row another transaction
// committed meanwhile, the row is resolved again and updated instead.
func upsert(
	ctx context.Context,
	repo repository.CustomerRepository,
	customerID, identification string,
	apply func(c *customer.Customer),
) (*customer.Customer, bool, error) {
	for attempt := 1; ; attempt++ {
		c, existing, err := resolve(ctx, repo, customerID, identification)
		if err != nil {
			return nil, false, err
		}
		apply(c)
		if existing {
			if err := repo.Save(ctx, c); err != nil {
				return nil, false, err
			}
			return c, true, nil
		}
		inserted, err := repo.CreateIfAbsent(ctx, c)
		if err != nil {
			return nil, false, err
		}
		if inserted {
			return c, false, nil
		}
		if attempt == maxUpsertAttempts {
			return nil, false, fmt.Errorf("%w: replica %s keeps conflicting", domain.ErrAlreadyExists, customerID)
		}
	}
}
