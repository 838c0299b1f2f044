// Package movement registers balance movements against accounts and reports
// them per customer.
package movement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/repository"
)

// Service is the account balance ledger.
type Service struct {
	uow       repository.UnitOfWork
	listeners []MovementListener
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Service. Listeners run in the order given; without any the
// ledger uses BalanceUpdater alone.
func New(uow repository.UnitOfWork, logger *slog.Logger, listeners ...MovementListener) *Service {
	if len(listeners) == 0 {
		listeners = []MovementListener{BalanceUpdater{}}
	}
	return &Service{
		uow:       uow,
		listeners: listeners,
		logger:    logger.With("service", "movement"),
		now:       time.Now,
	}
}

// Register applies a signed amount to an account and records the movement.
// The account row stays locked until the movement, every listener, and the
// balance change commit together.
func (s *Service) Register(ctx context.Context, in dto.MovementCreate) (mv *account.Movement, err error) {
	log := s.logger.With("account_id", in.AccountID, "amount", in.Amount.String())
	log.Info("Register movement started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		movements, err := uow.MovementRepository()
		if err != nil {
			return err
		}

		acc, err := accounts.GetForUpdate(ctx, in.AccountID)
		if err != nil {
			return err
		}
		projected, err := acc.Project(in.Amount)
		if err != nil {
			return err
		}
		mv, err = account.NewMovement(
			acc,
			account.MovementType(in.Type),
			in.Amount,
			projected,
			in.Description,
			in.ReferenceNumber,
			in.Date,
		)
		if err != nil {
			return err
		}
		if err := movements.Create(ctx, mv); err != nil {
			return err
		}
		for _, l := range s.listeners {
			if err := l.OnMovementCreated(ctx, uow, acc, mv); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Register movement failed", "error", err)
		return nil, err
	}
	log.Info("Register movement successful", "reference", mv.ReferenceNumber, "balance", mv.Balance.String())
	return mv, nil
}

// Report lists the movements of every account owned by the customer between
// the start of start's day and the end of end's day, newest first. end
// defaults to today.
func (s *Service) Report(
	ctx context.Context,
	customerID string,
	start, end *time.Time,
) ([]*account.Movement, error) {
	from, to, err := s.reportRange(start, end)
	if err != nil {
		return nil, err
	}

	var out []*account.Movement
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		movements, err := uow.MovementRepository()
		if err != nil {
			return err
		}
		c, err := customers.GetByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		out, err = movements.ListByCustomerBetween(ctx, c.ID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) reportRange(start, end *time.Time) (time.Time, time.Time, error) {
	if start == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date is required", domain.ErrInvalidArgs)
	}
	now := s.now().UTC()
	today := startOfDay(now)
	to := today
	if end != nil {
		to = startOfDay(*end)
	}
	from := startOfDay(*start)
	if from.After(today) || to.After(today) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: report dates must not be in the future", domain.ErrInvalidArgs)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date is before start date", domain.ErrInvalidArgs)
	}
	return from, to.Add(24*time.Hour - time.Second), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
