package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the mirror store. Callers match them with
// errors.Is.
var (
	// ErrStateConflict is returned when Initialize is called while a sync
	// token is already persisted. It indicates a logic error in the
	// reconciler's state detection and must not be retried.
	ErrStateConflict = errors.New("mirror is already initialized")

	// ErrNotInitialized is returned when ApplyDiff is called before any
	// token has been persisted.
	ErrNotInitialized = errors.New("mirror is not initialized")

	// ErrNodeNotFound is returned when a read targets a node that does not
	// exist in the mirror.
	ErrNodeNotFound = errors.New("node was not found in the mirror")

	// ErrIntegrity matches any *IntegrityError via errors.Is. It signals a
	// constraint violation while applying a diff; the whole transaction was
	// rolled back and the previously persisted token is untouched.
	ErrIntegrity = errors.New("mirror integrity violation")
)

// Low-level database operation errors, wrapped around driver errors before
// any domain logic applies.
var (
	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction, including the immediate-lock failure produced when a
	// second writer is already active.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails for a
	// reason other than a constraint violation.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan mirror row")

	// ErrScanningRows is returned when an error is detected during
	// multi-row iteration.
	ErrScanningRows = errors.New("failed to scan mirror rows")
)

// IntegrityError reports which node and which constraint broke a diff
// application, with the driver error preserved for diagnosis.
type IntegrityError struct {
	// NodeID is the server id of the offending node, when known.
	NodeID string
	// Constraint names the violated constraint kind: "foreign_key",
	// "unique", "check" or "not_null".
	Constraint string
	// Err is the underlying driver error.
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation on node %q (%s constraint): %v", e.NodeID, e.Constraint, e.Err)
}

// Is makes errors.Is(err, ErrIntegrity) match every IntegrityError.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
