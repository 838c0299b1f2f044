// Package app assembles the services of each binary from its dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/handler/common"
	"github.com/amirasaad/corebank/pkg/provider"
	"github.com/amirasaad/corebank/pkg/repository"
	accountsvc "github.com/amirasaad/corebank/pkg/service/account"
	customersvc "github.com/amirasaad/corebank/pkg/service/customer"
	"github.com/amirasaad/corebank/pkg/service/identity"
	movementsvc "github.com/amirasaad/corebank/pkg/service/movement"
)

// Deps contains the infrastructure the services are built from. Fields a
// binary does not use may be nil.
type Deps struct {
	Uow            repository.UnitOfWork
	Publisher      eventbus.Publisher
	CustomerLookup provider.CustomerLookup
	ProcessedStore repository.ProcessedEventStore
	Logger         *slog.Logger
}

// Movement is the financial-movement service: accounts, the ledger, and the
// customer replica.
type Movement struct {
	Deps            *Deps
	Config          *config.App
	Directory       *customersvc.Directory
	Reconciler      *customersvc.Reconciler
	AccountService  *accountsvc.Service
	MovementService *movementsvc.Service
}

func NewMovement(deps *Deps, cfg *config.App) *Movement {
	directory := customersvc.NewDirectory(deps.CustomerLookup, deps.Logger)
	return &Movement{
		Deps:            deps,
		Config:          cfg,
		Directory:       directory,
		Reconciler:      customersvc.NewReconciler(deps.Uow, deps.Logger),
		AccountService:  accountsvc.New(deps.Uow, directory, deps.Logger),
		MovementService: movementsvc.New(deps.Uow, deps.Logger, movementsvc.BalanceUpdater{}),
	}
}

// EventHandler is the reconciler behind the idempotency guard. Without a
// processed-event store the reconciler is used as is.
func (a *Movement) EventHandler() eventbus.HandlerFunc {
	handler := a.Reconciler.Handler()
	if a.Deps.ProcessedStore == nil {
		return handler
	}
	return common.WithIdempotency(
		handler,
		common.NewIdempotencyTracker(a.Deps.ProcessedStore),
		common.EventIDKey,
		"customer_reconciler",
		a.Deps.Logger,
	)
}

// Identity is the service that owns customers.
type Identity struct {
	Deps            *Deps
	Config          *config.App
	CustomerService *identity.Service
}

func NewIdentity(deps *Deps, cfg *config.App) *Identity {
	return &Identity{
		Deps:            deps,
		Config:          cfg,
		CustomerService: identity.New(deps.Uow, deps.Publisher, deps.Logger),
	}
}
