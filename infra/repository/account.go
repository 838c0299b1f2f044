package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on the given session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(tx, "id = ?", id)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	return r.first(r.db.WithContext(ctx), "account_number = ?", number)
}

func (r *accountRepository) first(tx *gorm.DB, query string, arg any) (*account.Account, error) {
	var m Account
	err := WrapError(func() error {
		return tx.Where(query, arg).First(&m).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAccountDomain(&m), nil
}

func (r *accountRepository) List(ctx context.Context, page repository.Page) ([]*account.Account, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Account{}).Count(&total).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	var rows []Account
	err := r.db.WithContext(ctx).
		Order("opened_at ASC").
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	return toAccounts(rows), total, nil
}

func (r *accountRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return toAccounts(rows), nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(toAccountModel(a)).Error
	})
}

func (r *accountRepository) UpdateStatus(ctx context.Context, number string, status account.Status) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", number).
		Update("status", string(status))
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) SetStatusByCustomer(
	ctx context.Context,
	customerID uuid.UUID,
	status account.Status,
) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("customer_id = ?", customerID).
		Update("status", string(status))
	return res.RowsAffected, MapGormErrorToDomain(res.Error)
}

func (r *accountRepository) ApplyDelta(
	ctx context.Context,
	number string,
	delta decimal.Decimal,
	at time.Time,
) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ? AND current_balance + ? >= 0", number, delta).
		Updates(map[string]any{
			"current_balance":     gorm.Expr("current_balance + ?", delta),
			"last_transaction_at": at,
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", number).
		Count(&count).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	if count == 0 {
		return domain.ErrAccountNotFound
	}
	return domain.ErrInsufficientBalance
}

func toAccounts(rows []Account) []*account.Account {
	result := make([]*account.Account, 0, len(rows))
	for i := range rows {
		result = append(result, toAccountDomain(&rows[i]))
	}
	return result
}
