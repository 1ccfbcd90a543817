package repository

import (
	"context"
	"errors"

	"cricscore/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories
// work standalone or inside a unit of work
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres error codes the domain taxonomy cares about
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translateError maps low-level postgres failures onto the domain error
// taxonomy: unique violations become state conflicts, serialization failures
// and deadlocks become retryable concurrency conflicts. Anything else passes
// through for the caller to wrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return service.NewStateConflictError("conflicting row already exists: %s", pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected:
			return service.NewConcurrencyConflictError("concurrent update detected, retry the submission", err)
		}
	}
	return err
}
