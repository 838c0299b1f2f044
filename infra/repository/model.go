package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer represents a customer record in the database. The identity
// service owns the authoritative rows; the movement service keeps replicas
// in a table of the same shape.
type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID     string    `gorm:"column:customer_id;size:64;not null;uniqueIndex:uk_customers_customer_id"`
	Identification *string   `gorm:"size:20;uniqueIndex:uk_customers_identification"`
	FirstName      string    `gorm:"size:50"`
	LastName       string    `gorm:"size:50;index:idx_customers_last_name"`
	Gender         string    `gorm:"size:10"`
	Age            int
	Address        string `gorm:"size:255"`
	Email          string `gorm:"size:255"`
	Password       string `gorm:"size:100"`
	Status         string `gorm:"size:20;not null;default:'ACTIVE';index:idx_customers_status"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string {
	return "customers"
}

// Account represents an account record in the database.
type Account struct {
	ID                uuid.UUID           `gorm:"type:uuid;primary_key"`
	AccountNumber     string              `gorm:"size:20;not null;uniqueIndex:uk_accounts_account_number"`
	AccountType       string              `gorm:"size:20;not null"`
	InitialBalance    decimal.Decimal     `gorm:"type:numeric(19,4);not null"`
	CurrentBalance    decimal.Decimal     `gorm:"type:numeric(19,4);not null;check:chk_accounts_current_balance,current_balance >= 0"`
	Status            string              `gorm:"size:20;not null"`
	CurrencyCode      string              `gorm:"type:varchar(3);not null;default:'USD'"`
	CustomerID        uuid.UUID           `gorm:"type:uuid;not null;index:idx_accounts_customer_id"`
	InterestRate      decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	OverdraftLimit    decimal.NullDecimal `gorm:"type:numeric(19,4)"`
	OpenedAt          time.Time           `gorm:"not null"`
	LastTransactionAt *time.Time
	ClosedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Movement represents a persisted balance movement.
type Movement struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_movements_account_id"`
	MovementDate    time.Time       `gorm:"column:movement_date;not null;index:idx_movements_date"`
	MovementType    string          `gorm:"column:movement_type;size:20;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Balance         decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Description     string          `gorm:"size:255"`
	ReferenceNumber string          `gorm:"size:50;not null;uniqueIndex:uk_movements_reference_number"`
	Status          string          `gorm:"size:20;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Owning account. Only declared so the schema carries the foreign key.
	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Filled by report queries that join accounts.
	AccountNumber string `gorm:"->;-:migration"`
}

// TableName specifies the table name for the Movement model.
func (Movement) TableName() string {
	return "movements"
}

// Models lists every table, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{&Customer{}, &Account{}, &Movement{}}
}
