package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository on the given session.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *customerRepository) GetByCustomerID(ctx context.Context, customerID string) (*customer.Customer, error) {
	return r.first(ctx, "customer_id = ?", customerID)
}

func (r *customerRepository) GetByIdentification(ctx context.Context, identification string) (*customer.Customer, error) {
	if identification == "" {
		return nil, domain.ErrCustomerNotFound
	}
	return r.first(ctx, "identification = ?", identification)
}

func (r *customerRepository) first(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var m Customer
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return toCustomerDomain(&m), nil
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var rows []Customer
	if err := r.db.WithContext(ctx).Order("first_name ASC").Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*customer.Customer, 0, len(rows))
	for i := range rows {
		result = append(result, toCustomerDomain(&rows[i]))
	}
	return result, nil
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m := toCustomerModel(c)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return err
	}
	c.CreatedAt, c.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *customerRepository) CreateIfAbsent(ctx context.Context, c *customer.Customer) (bool, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m := toCustomerModel(c)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	c.CreatedAt, c.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return true, nil
}

func (r *customerRepository) Save(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	m := toCustomerModel(c)
	res := r.db.WithContext(ctx).Model(m).Select("*").Updates(m)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
