package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a queried row does not exist.
	ErrNotFound = errors.New("record was not found")

	// ErrUserNotFound is returned when no user row matches the given id.
	ErrUserNotFound = fmt.Errorf("user: %w", ErrNotFound)

	// ErrProductNotFound is returned when no product row matches the given id.
	ErrProductNotFound = fmt.Errorf("product: %w", ErrNotFound)

	// ErrTransient marks failures the backend classified as retryable
	// (connection loss, deadlock, busy database).
	ErrTransient = errors.New("transient database failure")

	// ErrUniqueViolation is returned when a unique index rejected a write,
	// e.g. two users picking the same PIN concurrently.
	ErrUniqueViolation = errors.New("unique constraint violated")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
