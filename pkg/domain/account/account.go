package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an account is opened without a currency code.
const DefaultCurrency = "USD"

// Type of banking product.
type Type string

const (
	TypeSavings      Type = "SAVINGS"
	TypeChecking     Type = "CHECKING"
	TypeLoan         Type = "LOAN"
	TypeCredit       Type = "CREDIT"
	TypeInvestment   Type = "INVESTMENT"
	TypeFixedDeposit Type = "FIXED_DEPOSIT"
)

// Valid reports whether t is a known account type.
func (t Type) Valid() bool {
	switch t {
	case TypeSavings, TypeChecking, TypeLoan, TypeCredit, TypeInvestment, TypeFixedDeposit:
		return true
	}
	return false
}

// Status of an account.
type Status string

const (
	StatusActive          Status = "ACTIVE"
	StatusInactive        Status = "INACTIVE"
	StatusFrozen          Status = "FROZEN"
	StatusClosed          Status = "CLOSED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
)

// Account is a customer's banking product and the aggregate root of its
// movements.
//
// Invariants:
//   - CurrentBalance equals InitialBalance plus every completed movement amount.
//   - CurrentBalance never becomes negative through a registered movement.
type Account struct {
	ID                uuid.UUID
	AccountNumber     string
	Type              Type
	InitialBalance    decimal.Decimal
	CurrentBalance    decimal.Decimal
	Status            Status
	CurrencyCode      string
	CustomerID        uuid.UUID // local replica row id
	InterestRate      *decimal.Decimal
	OverdraftLimit    *decimal.Decimal
	OpenedAt          time.Time
	LastTransactionAt *time.Time
	ClosedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Open validates the request and returns a new ACTIVE account whose current
// balance starts at the initial balance.
func Open(
	customerID uuid.UUID,
	number string,
	typ Type,
	initialBalance decimal.Decimal,
	currencyCode string,
) (*Account, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: account number is required", domain.ErrInvalidArgs)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: account type %q is not supported", domain.ErrInvalidArgs, typ)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must be zero or positive", domain.ErrInvalidArgs)
	}
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Account{
		ID:             uuid.New(),
		AccountNumber:  number,
		Type:           typ,
		InitialBalance: initialBalance,
		CurrentBalance: initialBalance,
		Status:         StatusActive,
		CurrencyCode:   currencyCode,
		CustomerID:     customerID,
		OpenedAt:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Project returns the balance the account would hold after amount is applied.
// amount is signed: credits are positive and debits negative.
func (a *Account) Project(amount decimal.Decimal) (decimal.Decimal, error) {
	projected := a.CurrentBalance.Add(amount)
	if projected.IsNegative() {
		return a.CurrentBalance, domain.ErrInsufficientBalance
	}
	return projected, nil
}

// Deactivate marks the account INACTIVE.
func (a *Account) Deactivate() {
	a.Status = StatusInactive
	a.UpdatedAt = time.Now().UTC()
}
