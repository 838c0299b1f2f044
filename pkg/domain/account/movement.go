package account

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies a movement.
type MovementType string

const (
	MovementDeposit     MovementType = "DEPOSIT"
	MovementWithdrawal  MovementType = "WITHDRAWAL"
	MovementTransferIn  MovementType = "TRANSFER_IN"
	MovementTransferOut MovementType = "TRANSFER_OUT"
	MovementPayment     MovementType = "PAYMENT"
	MovementInterest    MovementType = "INTEREST"
	MovementFee         MovementType = "FEE"
	MovementAdjustment  MovementType = "ADJUSTMENT"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	switch t {
	case MovementDeposit, MovementWithdrawal, MovementTransferIn, MovementTransferOut,
		MovementPayment, MovementInterest, MovementFee, MovementAdjustment:
		return true
	}
	return false
}

// MovementStatus tracks a movement's processing state.
type MovementStatus string

const (
	MovementPending    MovementStatus = "PENDING"
	MovementProcessing MovementStatus = "PROCESSING"
	MovementCompleted  MovementStatus = "COMPLETED"
	MovementFailed     MovementStatus = "FAILED"
	MovementReversed   MovementStatus = "REVERSED"
)

// Movement is a signed change to an account balance. Balance is the account
// balance right after the movement was applied.
type Movement struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	AccountNumber   string
	Date            time.Time
	Type            MovementType
	Amount          decimal.Decimal
	Balance         decimal.Decimal
	Description     string
	ReferenceNumber string
	Status          MovementStatus
	CreatedAt       time.Time
}

// NewMovement builds a COMPLETED movement against acc. The caller must have
// checked the balance with Account.Project; balance is the projected value.
func NewMovement(
	acc *Account,
	typ MovementType,
	amount, balance decimal.Decimal,
	description, reference string,
	date time.Time,
) (*Movement, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: movement type %q is not supported", domain.ErrInvalidArgs, typ)
	}
	if len(description) > 255 {
		return nil, fmt.Errorf("%w: description must not exceed 255 characters", domain.ErrInvalidArgs)
	}
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	if date.After(now) {
		return nil, fmt.Errorf("%w: movement date must be in the past or present", domain.ErrInvalidArgs)
	}
	if reference == "" {
		reference = NewReferenceNumber(now)
	}
	return &Movement{
		ID:              uuid.New(),
		AccountID:       acc.ID,
		AccountNumber:   acc.AccountNumber,
		Date:            date,
		Type:            typ,
		Amount:          amount,
		Balance:         balance,
		Description:     description,
		ReferenceNumber: reference,
		Status:          MovementCompleted,
		CreatedAt:       now,
	}, nil
}

// NewReferenceNumber formats "MOV<unix millis>-<0..9999>". Two references
// generated in the same millisecond collide with probability 1/10000; the
// unique index on the column turns that into ErrAlreadyExists.
func NewReferenceNumber(at time.Time) string {
	return fmt.Sprintf("MOV%d-%d", at.UnixMilli(), rand.Intn(10000))
}
