package store

// ErrorClassification is the result of [ErrorClassificator.Classify].
// It tells the caller whether a failed operation is worth retrying or hit a
// constraint of the schema.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable

	// UniqueViolation indicates a unique index rejected the write.
	UniqueViolation
)

// ErrorClassificator maps backend driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
