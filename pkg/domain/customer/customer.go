// Package customer holds the customer aggregate shared by the identity
// service (the owner) and the financial-movement service (the replica).
package customer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/google/uuid"
)

// Gender of the person behind a customer.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Status of a customer record.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusDeleted   Status = "DELETED"
	StatusLocked    Status = "LOCKED"
	StatusClosed    Status = "CLOSED"
)

var identificationPattern = regexp.MustCompile(`^[A-Z0-9]{5,20}$`)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended,
		StatusDeleted, StatusLocked, StatusClosed:
		return true
	}
	return false
}

// Customer is a person with banking products. Person attributes are flattened
// into the record.
//
// CustomerID is the identifier assigned by the identity service and is not
// guaranteed to be a UUID. Identification is the national id and is unique
// when present; replicas created by a lazy lookup may not know it yet.
type Customer struct {
	ID             uuid.UUID
	CustomerID     string
	Identification string
	FirstName      string
	LastName       string
	Gender         Gender
	Age            int
	Address        string
	Email          string
	Password       string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Snapshot is the full set of customer attributes carried by lifecycle events
// and by the identity service lookup response.
type Snapshot struct {
	CustomerID     string
	FirstName      string
	LastName       string
	Identification string
	Gender         Gender
	Age            int
	Password       string
	Status         Status
	Address        string
	Email          string
}

// Snapshot returns the current attributes of c.
func (c *Customer) Snapshot() Snapshot {
	return Snapshot{
		CustomerID:     c.CustomerID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Identification: c.Identification,
		Gender:         c.Gender,
		Age:            c.Age,
		Password:       c.Password,
		Status:         c.Status,
		Address:        c.Address,
		Email:          c.Email,
	}
}

// Apply overwrites every snapshot attribute of c, including CustomerID.
// There is no version check: the last applied snapshot wins.
func (c *Customer) Apply(s Snapshot) {
	c.CustomerID = s.CustomerID
	c.FirstName = s.FirstName
	c.LastName = s.LastName
	c.Identification = s.Identification
	c.Gender = s.Gender
	c.Age = s.Age
	c.Password = s.Password
	c.Status = s.Status
	c.Address = s.Address
	c.Email = s.Email
}

// NewReplica builds an empty replica row keyed by customerID.
func NewReplica(customerID string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// New validates the attributes of a customer about to be registered in the
// identity service. password must already be hashed.
func New(s Snapshot) (*Customer, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	c := NewReplica(s.CustomerID)
	c.Apply(s)
	if c.Status == "" {
		c.Status = StatusActive
	}
	return c, nil
}

func validate(s Snapshot) error {
	var errs []error
	if _, err := uuid.Parse(s.CustomerID); err != nil {
		errs = append(errs, fmt.Errorf("customer id %q is not a valid id", s.CustomerID))
	}
	if !identificationPattern.MatchString(s.Identification) {
		errs = append(errs, fmt.Errorf("identification %q has an invalid format", s.Identification))
	}
	if n := len(s.FirstName); n < 2 || n > 50 {
		errs = append(errs, errors.New("first name must be between 2 and 50 characters"))
	}
	if n := len(s.LastName); n < 2 || n > 50 {
		errs = append(errs, errors.New("last name must be between 2 and 50 characters"))
	}
	if !s.Gender.Valid() {
		errs = append(errs, fmt.Errorf("gender %q is not supported", s.Gender))
	}
	if s.Age <= 0 {
		errs = append(errs, errors.New("age must be a positive number"))
	}
	if s.Status != "" && !s.Status.Valid() {
		errs = append(errs, fmt.Errorf("status %q is not supported", s.Status))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}
