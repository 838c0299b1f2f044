package account

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	AccountNumber  string          `json:"accountNumber" validate:"required,max=20"`
	AccountType    string          `json:"accountType" validate:"required,oneof=SAVINGS CHECKING LOAN CREDIT INVESTMENT FIXED_DEPOSIT"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrencyCode   string          `json:"currencyCode" validate:"omitempty,len=3,uppercase,alpha"`
	CustomerID     string          `json:"customerId" validate:"required,max=64"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID                uuid.UUID       `json:"uuid"`
	AccountNumber     string          `json:"accountNumber"`
	AccountType       string          `json:"accountType"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	Status            string          `json:"status"`
	CurrencyCode      string          `json:"currencyCode"`
	CustomerUUID      uuid.UUID       `json:"customerUuid"`
	OpenedAt          time.Time       `json:"openedAt"`
	LastTransactionAt *time.Time      `json:"lastTransactionAt,omitempty"`
}

// PageDTO is one page of accounts.
type PageDTO struct {
	Content []AccountDTO `json:"content"`
	Page    int          `json:"page"`
	Size    int          `json:"size"`
	Total   int64        `json:"totalElements"`
}

//revive:enable

func toAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:                a.ID,
		AccountNumber:     a.AccountNumber,
		AccountType:       string(a.Type),
		InitialBalance:    a.InitialBalance,
		CurrentBalance:    a.CurrentBalance,
		Status:            string(a.Status),
		CurrencyCode:      a.CurrencyCode,
		CustomerUUID:      a.CustomerID,
		OpenedAt:          a.OpenedAt,
		LastTransactionAt: a.LastTransactionAt,
	}
}
