package movement

import (
	"context"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/repository"
)

// MovementListener reacts to a persisted movement inside the transaction
// that created it. A returned error rolls the whole registration back.
type MovementListener interface {
	OnMovementCreated(ctx context.Context, uow repository.UnitOfWork, acc *account.Account, mv *account.Movement) error
}

// ListenerFunc adapts a function to MovementListener.
type ListenerFunc func(ctx context.Context, uow repository.UnitOfWork, acc *account.Account, mv *account.Movement) error

func (f ListenerFunc) OnMovementCreated(
	ctx context.Context,
	uow repository.UnitOfWork,
	acc *account.Account,
	mv *account.Movement,
) error {
	return f(ctx, uow, acc, mv)
}

// BalanceUpdater adds the movement amount to the account balance. The
// update is guarded in SQL, so a concurrent debit can never drive the
// balance below zero.
type BalanceUpdater struct{}

func (BalanceUpdater) OnMovementCreated(
	ctx context.Context,
	uow repository.UnitOfWork,
	acc *account.Account,
	mv *account.Movement,
) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	current, err := accounts.GetByNumber(ctx, acc.AccountNumber)
	if err != nil {
		return err
	}
	if err := accounts.ApplyDelta(ctx, current.AccountNumber, mv.Amount, mv.Date); err != nil {
		return err
	}
	acc.CurrentBalance = current.CurrentBalance.Add(mv.Amount)
	return nil
}

var _ MovementListener = BalanceUpdater{}
