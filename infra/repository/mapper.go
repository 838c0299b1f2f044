package repository

import (
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/shopspring/decimal"
)

func toCustomerModel(c *customer.Customer) *Customer {
	m := &Customer{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Gender:     string(c.Gender),
		Age:        c.Age,
		Address:    c.Address,
		Email:      c.Email,
		Password:   c.Password,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Identification != "" {
		id := c.Identification
		m.Identification = &id
	}
	if m.Status == "" {
		m.Status = string(customer.StatusActive)
	}
	return m
}

func toCustomerDomain(m *Customer) *customer.Customer {
	c := &customer.Customer{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Gender:     customer.Gender(m.Gender),
		Age:        m.Age,
		Address:    m.Address,
		Email:      m.Email,
		Password:   m.Password,
		Status:     customer.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Identification != nil {
		c.Identification = *m.Identification
	}
	return c
}

func toAccountModel(a *account.Account) *Account {
	return &Account{
		ID:                a.ID,
		AccountNumber:     a.AccountNumber,
		AccountType:       string(a.Type),
		InitialBalance:    a.InitialBalance,
		CurrentBalance:    a.CurrentBalance,
		Status:            string(a.Status),
		CurrencyCode:      a.CurrencyCode,
		CustomerID:        a.CustomerID,
		InterestRate:      nullDecimal(a.InterestRate),
		OverdraftLimit:    nullDecimal(a.OverdraftLimit),
		OpenedAt:          a.OpenedAt,
		LastTransactionAt: a.LastTransactionAt,
		ClosedAt:          a.ClosedAt,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toAccountDomain(m *Account) *account.Account {
	return &account.Account{
		ID:                m.ID,
		AccountNumber:     m.AccountNumber,
		Type:              account.Type(m.AccountType),
		InitialBalance:    m.InitialBalance,
		CurrentBalance:    m.CurrentBalance,
		Status:            account.Status(m.Status),
		CurrencyCode:      m.CurrencyCode,
		CustomerID:        m.CustomerID,
		InterestRate:      decimalPtr(m.InterestRate),
		OverdraftLimit:    decimalPtr(m.OverdraftLimit),
		OpenedAt:          m.OpenedAt,
		LastTransactionAt: m.LastTransactionAt,
		ClosedAt:          m.ClosedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toMovementModel(mv *account.Movement) *Movement {
	return &Movement{
		ID:              mv.ID,
		AccountID:       mv.AccountID,
		MovementDate:    mv.Date,
		MovementType:    string(mv.Type),
		Amount:          mv.Amount,
		Balance:         mv.Balance,
		Description:     mv.Description,
		ReferenceNumber: mv.ReferenceNumber,
		Status:          string(mv.Status),
		CreatedAt:       mv.CreatedAt,
	}
}

func toMovementDomain(m *Movement) *account.Movement {
	return &account.Movement{
		ID:              m.ID,
		AccountID:       m.AccountID,
		AccountNumber:   m.AccountNumber,
		Date:            m.MovementDate,
		Type:            account.MovementType(m.MovementType),
		Amount:          m.Amount,
		Balance:         m.Balance,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		Status:          account.MovementStatus(m.Status),
		CreatedAt:       m.CreatedAt,
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
