package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/events"
	"cricscore/service"
	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	matchRepo        service.MatchRepository
	inningsRepo      service.InningsRepository
	batsmanRepo      service.BatsmanInningsRepository
	bowlerRepo       service.BowlerInningsRepository
	ballRepo         service.BallRepository
	statisticRepo    service.PlayerStatisticRepository
	milestoneRepo    service.PlayerMilestoneRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.matchRepo = newMatchRepositoryWithTx(tx)
	u.inningsRepo = newInningsRepositoryWithTx(tx)
	u.batsmanRepo = newBatsmanInningsRepositoryWithTx(tx)
	u.bowlerRepo = newBowlerInningsRepositoryWithTx(tx)
	u.ballRepo = newBallRepositoryWithTx(tx)
	u.statisticRepo = newPlayerStatisticRepositoryWithTx(tx)
	u.milestoneRepo = newPlayerMilestoneRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// WithSavepoint runs fn under a savepoint so a failure inside fn cannot
// poison the rest of the transaction. Postgres aborts a transaction on any
// statement error; rolling back to the savepoint clears the aborted state
// and the writes made before it remain committable. pgx issues SAVEPOINT /
// RELEASE / ROLLBACK TO for a nested Begin.
func (u *unitOfWork) WithSavepoint(ctx context.Context, fn func() error) error {
	if u.tx == nil {
		return fmt.Errorf("no transaction for savepoint")
	}

	sp, err := u.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	if err := fn(); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			return fmt.Errorf("failed to roll back savepoint after %v: %w", err, rbErr)
		}
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", translateError(err))
	}
	return nil
}

// MatchRepository returns the match repository for this unit of work
func (u *unitOfWork) MatchRepository() service.MatchRepository {
	if u.matchRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.matchRepo
}

// InningsRepository returns the innings repository for this unit of work
func (u *unitOfWork) InningsRepository() service.InningsRepository {
	if u.inningsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inningsRepo
}

// BatsmanInningsRepository returns the batsman innings repository for this unit of work
func (u *unitOfWork) BatsmanInningsRepository() service.BatsmanInningsRepository {
	if u.batsmanRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.batsmanRepo
}

// BowlerInningsRepository returns the bowler innings repository for this unit of work
func (u *unitOfWork) BowlerInningsRepository() service.BowlerInningsRepository {
	if u.bowlerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bowlerRepo
}

// BallRepository returns the ball repository for this unit of work
func (u *unitOfWork) BallRepository() service.BallRepository {
	if u.ballRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ballRepo
}

// PlayerStatisticRepository returns the player statistic repository for this unit of work
func (u *unitOfWork) PlayerStatisticRepository() service.PlayerStatisticRepository {
	if u.statisticRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.statisticRepo
}

// PlayerMilestoneRepository returns the player milestone repository for this unit of work
func (u *unitOfWork) PlayerMilestoneRepository() service.PlayerMilestoneRepository {
	if u.milestoneRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.milestoneRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
