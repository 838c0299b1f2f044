package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCreate is a DTO for opening an account. CustomerID is the identity
// service's customer id.
type AccountCreate struct {
	AccountNumber  string
	Type           string
	InitialBalance decimal.Decimal
	CurrencyCode   string
	CustomerID     string
}

// MovementCreate is a DTO for registering a movement. Amount is signed.
// ReferenceNumber is generated when empty and Date defaults to now.
type MovementCreate struct {
	AccountID       uuid.UUID
	Type            string
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber string
	Date            time.Time
}

// PageResult is one page of a listing.
type PageResult[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}
