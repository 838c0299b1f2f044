// Package identity owns the customer records. Every committed change is
// announced on the event bus so replicas elsewhere can follow.
package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/amirasaad/corebank/pkg/utils"
	"github.com/google/uuid"
)

// Service provides customer registration, updates, and soft deletion.
type Service struct {
	uow       repository.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// New creates a Service. Events are published only after the change commits
// and a failed publish never fails the operation.
func New(
	uow repository.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:       uow,
		publisher: publisher,
		logger:    logger.With("service", "identity"),
	}
}

// Create registers a customer and publishes CustomerCreated.
func (s *Service) Create(ctx context.Context, in dto.CustomerCreate) (c *customer.Customer, err error) {
	if in.CustomerID == "" {
		in.CustomerID = uuid.NewString()
	}
	log := s.logger.With("customer_id", in.CustomerID)
	log.Info("Create customer started")

	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	c, err = customer.New(customer.Snapshot{
		CustomerID:     in.CustomerID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Identification: in.Identification,
		Gender:         customer.Gender(in.Gender),
		Age:            in.Age,
		Password:       hashed,
		Status:         customer.Status(in.Status),
		Address:        in.Address,
		Email:          in.Email,
	})
	if err != nil {
		log.Error("Create customer failed: domain error", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		log.Error("Create customer failed", "error", err)
		return nil, err
	}
	log.Info("Create customer successful")
	s.publisher.Publish(ctx, events.NewCustomerCreated(c.Snapshot()))
	return c, nil
}

// Update patches the provided fields and publishes CustomerModified with
// the full resulting snapshot.
func (s *Service) Update(ctx context.Context, customerID string, in dto.CustomerUpdate) (c *customer.Customer, err error) {
	log := s.logger.With("customer_id", customerID)
	if err := validatePatch(in); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = repo.GetByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		applyPatch(c, in)
		return repo.Save(ctx, c)
	})
	if err != nil {
		log.Error("Update customer failed", "error", err)
		return nil, err
	}
	log.Info("Update customer successful")
	s.publisher.Publish(ctx, events.NewCustomerModified(c.Snapshot()))
	return c, nil
}

func validatePatch(in dto.CustomerUpdate) error {
	for _, name := range []*string{in.FirstName, in.LastName} {
		if name != nil && (len(*name) < 2 || len(*name) > 50) {
			return fmt.Errorf("%w: names must be between 2 and 50 characters", domain.ErrValidation)
		}
	}
	if in.Email != nil && *in.Email != "" && !utils.IsEmail(*in.Email) {
		return fmt.Errorf("%w: email %q is not valid", domain.ErrValidation, *in.Email)
	}
	if in.Status != nil && !customer.Status(*in.Status).Valid() {
		return fmt.Errorf("%w: status %q is not supported", domain.ErrValidation, *in.Status)
	}
	return nil
}

func applyPatch(c *customer.Customer, in dto.CustomerUpdate) {
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Status != nil {
		c.Status = customer.Status(*in.Status)
	}
}

// Remove soft deletes the customer by marking it INACTIVE and publishes
// CustomerDeleted.
func (s *Service) Remove(ctx context.Context, customerID string) error {
	log := s.logger.With("customer_id", customerID)
	var c *customer.Customer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = repo.GetByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		c.Status = customer.StatusInactive
		return repo.Save(ctx, c)
	})
	if err != nil {
		log.Error("Remove customer failed", "error", err)
		return err
	}
	log.Info("Customer removed")
	s.publisher.Publish(ctx, events.NewCustomerDeleted(c.CustomerID, c.FirstName, c.LastName))
	return nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, customerID string) (c *customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = repo.GetByCustomerID(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns every customer ordered by first name. An empty registry is
// reported as domain.ErrCustomerNotFound.
func (s *Service) List(ctx context.Context) (list []*customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		list, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return list, nil
}
