package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist
	// (or has been soft-deleted).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists,
	// e.g. a prompt with the same message id.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the ranked search index could not be
	// queried: malformed match expression, missing or corrupt index
	// structure, or an execution failure on the index path.
	//
	// It is recoverable: the search facade catches it and retries the
	// request on the substring fallback. It is never surfaced to callers.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrIndexSync indicates the search index could not be updated during
	// a prompt mutation. It is fatal for the enclosing mutation: the whole
	// transaction rolls back rather than leaving the prompt and its index
	// entry diverged.
	ErrIndexSync = errors.New("search index sync failed")

	// ErrSearchUnavailable indicates the search facade has no working
	// path left. The fallback has no further fallback.
	ErrSearchUnavailable = errors.New("search unavailable")
)
