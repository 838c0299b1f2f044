package repository

import (
	"context"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer data access operations.
// Lookups return domain.ErrCustomerNotFound when nothing matches.
type CustomerRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByCustomerID(ctx context.Context, customerID string) (*customer.Customer, error)
	GetByIdentification(ctx context.Context, identification string) (*customer.Customer, error)
	// List returns customers ordered by first name.
	List(ctx context.Context) ([]*customer.Customer, error)
	Create(ctx context.Context, c *customer.Customer) error
	// CreateIfAbsent inserts c unless a row with the same id, customer id or
	// identification already exists. It reports whether c was inserted.
	CreateIfAbsent(ctx context.Context, c *customer.Customer) (bool, error)
	// Save updates every column of an existing customer.
	Save(ctx context.Context, c *customer.Customer) error
}

// Page is a zero-based page request.
type Page struct {
	Page int
	Size int
}

// AccountRepository defines the interface for account data access operations.
// Lookups return domain.ErrAccountNotFound when nothing matches.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// GetForUpdate loads the account and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	List(ctx context.Context, page Page) ([]*account.Account, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	UpdateStatus(ctx context.Context, number string, status account.Status) error
	// SetStatusByCustomer updates every account of the customer in one
	// statement and returns the number of rows touched.
	SetStatusByCustomer(ctx context.Context, customerID uuid.UUID, status account.Status) (int64, error)
	// ApplyDelta adds delta to the current balance unless the result would be
	// negative, in which case it returns domain.ErrInsufficientBalance.
	ApplyDelta(ctx context.Context, number string, delta decimal.Decimal, at time.Time) error
}

// MovementRepository defines the interface for movement data access operations.
type MovementRepository interface {
	Create(ctx context.Context, m *account.Movement) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Movement, error)
	// ListByCustomerBetween returns movements of every account owned by the
	// customer dated within [from, to], newest first.
	ListByCustomerBetween(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]*account.Movement, error)
}

// ProcessedEventStore remembers which broker events were already handled.
type ProcessedEventStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkProcessed(ctx context.Context, key string) error
}
