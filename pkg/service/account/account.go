// Package account manages the lifecycle of banking accounts in the movement
// service.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/repository"
	customersvc "github.com/amirasaad/corebank/pkg/service/customer"
)

// DefaultPageSize applies when a listing asks for no size.
const DefaultPageSize = 20

// Service provides account creation, lookup, listing, and deactivation.
type Service struct {
	uow       repository.UnitOfWork
	directory *customersvc.Directory
	logger    *slog.Logger
}

// New creates a Service. Owners are resolved through directory, which may
// fetch them from the identity service.
func New(
	uow repository.UnitOfWork,
	directory *customersvc.Directory,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:       uow,
		directory: directory,
		logger:    logger.With("service", "account"),
	}
}

// Create opens an ACTIVE account for the customer.
func (s *Service) Create(ctx context.Context, in dto.AccountCreate) (acc *account.Account, err error) {
	log := s.logger.With("account_number", in.AccountNumber, "customer_id", in.CustomerID)
	log.Info("Create account started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		owner, err := s.directory.FindCustomer(ctx, uow, in.CustomerID)
		if err != nil {
			return err
		}
		acc, err = account.Open(
			owner.ID,
			in.AccountNumber,
			account.Type(in.Type),
			in.InitialBalance,
			in.CurrencyCode,
		)
		if err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, acc)
	})
	if err != nil {
		log.Error("Create account failed", "error", err)
		return nil, err
	}
	log.Info("Create account successful", "account_id", acc.ID)
	return acc, nil
}

// GetByNumber returns the account with the given number.
func (s *Service) GetByNumber(ctx context.Context, number string) (acc *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.GetByNumber(ctx, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// List returns one zero-based page of accounts.
func (s *Service) List(ctx context.Context, page repository.Page) (*dto.PageResult[*account.Account], error) {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = DefaultPageSize
	}
	result := &dto.PageResult[*account.Account]{Page: page.Page, Size: page.Size}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		result.Items, result.Total, err = repo.List(ctx, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Deactivate marks the account INACTIVE. Accounts are never removed.
func (s *Service) Deactivate(ctx context.Context, number string) error {
	log := s.logger.With("account_number", number)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.UpdateStatus(ctx, number, account.StatusInactive)
	})
	if err != nil {
		log.Error("Deactivate account failed", "error", err)
		return err
	}
	log.Info("Account deactivated")
	return nil
}
