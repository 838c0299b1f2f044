package movement

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportDateLayout is the dd/MM/yyyy format of report query dates.
const ReportDateLayout = "02/01/2006"

var movementDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

//revive:disable

// CreateMovementRequest represents the request body for registering a movement.
// Amount is signed: deposits are positive and withdrawals negative.
type CreateMovementRequest struct {
	AccountID       string          `json:"accountId" validate:"required,uuid"`
	Type            string          `json:"type" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" validate:"max=255"`
	ReferenceNumber string          `json:"referenceNumber" validate:"max=50"`
	Date            string          `json:"date"`
}

// MovementDTO is the API response representation of a movement.
type MovementDTO struct {
	ID              uuid.UUID       `json:"uuid"`
	Date            time.Time       `json:"date"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	Description     string          `json:"description,omitempty"`
	AccountID       uuid.UUID       `json:"accountId"`
	AccountNumber   string          `json:"accountNumber,omitempty"`
	ReferenceNumber string          `json:"referenceNumber"`
	Status          string          `json:"status"`
}

//revive:enable

func toMovementDTO(m *account.Movement) MovementDTO {
	return MovementDTO{
		ID:              m.ID,
		Date:            m.Date,
		Type:            string(m.Type),
		Amount:          m.Amount,
		Balance:         m.Balance,
		Description:     m.Description,
		AccountID:       m.AccountID,
		AccountNumber:   m.AccountNumber,
		ReferenceNumber: m.ReferenceNumber,
		Status:          string(m.Status),
	}
}

func parseMovementDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range movementDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
