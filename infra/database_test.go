package infra

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/corebank/infra/repository"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewDBConnection_RequiresURL(t *testing.T) {
	_, err := NewDBConnection(&config.DB{}, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestMigrate_AutoMigrateWithoutPath(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, Migrate(db, "", slog.New(slog.NewTextHandler(io.Discard, nil))))
	for _, table := range []string{"customers", "accounts", "movements"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasConstraint(&repository.Movement{}, "Account"), "movements reference accounts")
	assert.True(t, db.Migrator().HasConstraint(&repository.Account{}, "chk_accounts_current_balance"))
}

func TestMigrate_AutoMigrateRejectsNegativeBalance(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, "", slog.New(slog.NewTextHandler(io.Discard, nil))))

	err = db.Create(&repository.Account{
		ID:             uuid.New(),
		AccountNumber:  "478758",
		AccountType:    "SAVINGS",
		InitialBalance: decimal.Zero,
		CurrentBalance: decimal.NewFromInt(-1),
		Status:         "ACTIVE",
		CustomerID:     uuid.New(),
		OpenedAt:       time.Now().UTC(),
	}).Error
	assert.Error(t, err)
}
