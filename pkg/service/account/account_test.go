package account_test

import (
	"context"
	"log/slog"
	"testing"

	infrarepo "github.com/amirasaad/corebank/infra/repository"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/repository"
	accountsvc "github.com/amirasaad/corebank/pkg/service/account"
	customersvc "github.com/amirasaad/corebank/pkg/service/customer"
	"github.com/amirasaad/corebank/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLookup struct{ mock.Mock }

func (m *mockLookup) FetchCustomer(ctx context.Context, customerID string) (*dto.CustomerRead, error) {
	args := m.Called(ctx, customerID)
	if r, _ := args.Get(0).(*dto.CustomerRead); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(t *testing.T, lookup *mockLookup) (*accountsvc.Service, repository.UnitOfWork, *customer.Customer) {
	t.Helper()
	db := testutils.NewSQLiteDB(t)
	owner := customer.NewReplica(uuid.NewString())
	owner.FirstName, owner.LastName = "Jose", "Lema"
	require.NoError(t, infrarepo.NewCustomerRepository(db).Create(context.Background(), owner))

	uow := infrarepo.NewUoW(db)
	var directory *customersvc.Directory
	if lookup != nil {
		directory = customersvc.NewDirectory(lookup, slog.Default())
	} else {
		directory = customersvc.NewDirectory(nil, slog.Default())
	}
	return accountsvc.New(uow, directory, slog.Default()), uow, owner
}

func TestCreate(t *testing.T) {
	svc, _, owner := newService(t, nil)
	ctx := context.Background()

	acc, err := svc.Create(ctx, dto.AccountCreate{
		AccountNumber:  "478758",
		Type:           string(account.TypeSavings),
		InitialBalance: decimal.NewFromInt(2000),
		CustomerID:     owner.CustomerID,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, acc.CustomerID)
	assert.Equal(t, account.StatusActive, acc.Status)
	assert.Equal(t, account.DefaultCurrency, acc.CurrencyCode)

	got, err := svc.GetByNumber(ctx, "478758")
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(2000)))

	_, err = svc.Create(ctx, dto.AccountCreate{
		AccountNumber: "478758",
		Type:          string(account.TypeChecking),
		CustomerID:    owner.CustomerID,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreate_Rejected(t *testing.T) {
	svc, _, owner := newService(t, nil)

	_, err := svc.Create(context.Background(), dto.AccountCreate{
		AccountNumber:  "225487",
		Type:           string(account.TypeChecking),
		InitialBalance: decimal.NewFromInt(-1),
		CustomerID:     owner.CustomerID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)

	_, err = svc.Create(context.Background(), dto.AccountCreate{
		AccountNumber: "225487",
		Type:          string(account.TypeChecking),
		CustomerID:    uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreate_FetchesUnknownOwner(t *testing.T) {
	lookup := new(mockLookup)
	svc, uow, _ := newService(t, lookup)
	ctx := context.Background()
	remoteID := uuid.NewString()

	lookup.On("FetchCustomer", mock.Anything, remoteID).Return(&dto.CustomerRead{
		CustomerID:     remoteID,
		Identification: "1710034065",
		FirstName:      "Marianela",
		LastName:       "Montalvo",
	}, nil).Once()

	acc, err := svc.Create(ctx, dto.AccountCreate{
		AccountNumber: "585545",
		Type:          string(account.TypeSavings),
		CustomerID:    remoteID,
	})
	require.NoError(t, err)

	err = uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		require.NoError(t, err)
		c, err := repo.GetByCustomerID(ctx, remoteID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, acc.CustomerID)
		return nil
	})
	require.NoError(t, err)
	lookup.AssertExpectations(t)
}

func TestListAndDeactivate(t *testing.T) {
	svc, _, owner := newService(t, nil)
	ctx := context.Background()
	for _, n := range []string{"100001", "100002", "100003"} {
		_, err := svc.Create(ctx, dto.AccountCreate{
			AccountNumber: n,
			Type:          string(account.TypeChecking),
			CustomerID:    owner.CustomerID,
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, repository.Page{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)

	page, err = svc.List(ctx, repository.Page{Page: -1})
	require.NoError(t, err)
	assert.Equal(t, accountsvc.DefaultPageSize, page.Size)
	assert.Len(t, page.Items, 3)

	require.NoError(t, svc.Deactivate(ctx, "100002"))
	got, err := svc.GetByNumber(ctx, "100002")
	require.NoError(t, err)
	assert.Equal(t, account.StatusInactive, got.Status)

	assert.ErrorIs(t, svc.Deactivate(ctx, "999999"), domain.ErrAccountNotFound)
}
