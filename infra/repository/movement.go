package repository

import (
	"context"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a movement repository on the given session.
func NewMovementRepository(db *gorm.DB) repository.MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, mv *account.Movement) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(toMovementModel(mv)).Error
	})
}

func (r *movementRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Movement, error) {
	var rows []Movement
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("movement_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return toMovements(rows), nil
}

func (r *movementRepository) ListByCustomerBetween(
	ctx context.Context,
	customerID uuid.UUID,
	from, to time.Time,
) ([]*account.Movement, error) {
	var rows []Movement
	err := r.db.WithContext(ctx).
		Select("movements.*, accounts.account_number AS account_number").
		Joins("JOIN accounts ON accounts.id = movements.account_id").
		Where("accounts.customer_id = ?", customerID).
		Where("movements.movement_date BETWEEN ? AND ?", from, to).
		Order("movements.movement_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return toMovements(rows), nil
}

func toMovements(rows []Movement) []*account.Movement {
	result := make([]*account.Movement, 0, len(rows))
	for i := range rows {
		result = append(result, toMovementDomain(&rows[i]))
	}
	return result
}
