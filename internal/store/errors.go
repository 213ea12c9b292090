package store

import "errors"

// Sentinel errors returned by store methods to signal well-known conditions.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when no record with the given local id
	// exists for the owner.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordChanged is returned by MarkSynced when the record was edited
	// after it was listed. The remote id was stored but the record remains
	// pending so that the edit is pushed by the next run.
	ErrRecordChanged = errors.New("record changed during sync")

	// ErrRecordAlreadyExists is returned by Save for a duplicate local id.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrOwnerRequired is returned when a method is called without owner id.
	ErrOwnerRequired = errors.New("owner id is required")

	// ErrSessionNotFound is returned when no sign-in session is stored.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrDocumentNotFound is returned by [DocumentStore] for unknown ids.
	ErrDocumentNotFound = errors.New("document was not found")
)

// Low-level database operation errors. These are wrapped by store methods
// when a SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails midway.
	ErrScanningRows = errors.New("failed to scan rows")
)
