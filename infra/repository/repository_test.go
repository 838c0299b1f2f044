package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumns = []string{
	"id", "account_number", "account_type", "initial_balance", "current_balance",
	"status", "currency_code", "customer_id", "opened_at",
}

func TestAccountRepository_GetForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}
	id := uuid.New()

	rows := sqlmock.NewRows(accountColumns).
		AddRow(id.String(), "478758", "SAVINGS", "100", "100", "ACTIVE", "USD", uuid.NewString(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	acc, err := repo.GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "478758", acc.AccountNumber)
	assert.True(t, acc.CurrentBalance.Equal(decimal.NewFromInt(100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE account_number = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	acc, err := repo.GetByNumber(context.Background(), "missing")
	assert.Nil(t, acc)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepository_ApplyDeltaIsGuarded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "current_balance"=current_balance \+ \$1,"last_transaction_at"=\$2,.+ WHERE account_number = \$\d AND current_balance \+ \$\d >= 0`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ApplyDelta(context.Background(), "478758", decimal.NewFromInt(-50), time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ApplyDeltaRejectsOverdraw(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE account_number = \$\d AND current_balance \+ \$\d >= 0`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE account_number = \$1`).
		WithArgs("478758").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.ApplyDelta(context.Background(), "478758", decimal.NewFromInt(-150), time.Now())
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_SetStatusByCustomerIsOneStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "status"=\$1,"updated_at"=\$2 WHERE customer_id = \$3`).
		WithArgs(string(account.StatusInactive), sqlmock.AnyArg(), customerID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.SetStatusByCustomer(context.Background(), customerID, account.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := customerRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE customer_id = \$1 ORDER BY "customers"\."id" LIMIT \$2`).
		WithArgs("c-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, err := repo.GetByCustomerID(context.Background(), "c-1")
	assert.Nil(t, c)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerRepository_EmptyIdentificationNeverMatches(t *testing.T) {
	db, mock := newMockDB(t)
	repo := customerRepository{db: db}

	_, err := repo.GetByIdentification(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_ReportJoinsAccounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := movementRepository{db: db}
	customerID := uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Second)

	mock.ExpectQuery(`SELECT movements\.\*, accounts\.account_number AS account_number FROM "movements" JOIN accounts ON accounts\.id = movements\.account_id WHERE accounts\.customer_id = \$1 AND \(movements\.movement_date BETWEEN \$2 AND \$3\) ORDER BY movements\.movement_date DESC`).
		WithArgs(customerID, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_number", "amount"}).
			AddRow(uuid.NewString(), "478758", "-25.5"))

	list, err := repo.ListByCustomerBetween(context.Background(), customerID, from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "478758", list[0].AccountNumber)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("-25.5")))
}
