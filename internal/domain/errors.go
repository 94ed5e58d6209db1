package domain

import "errors"

// Sentinel errors for store and cache operations. Callers discriminate with
// errors.Is; store methods wrap these with entity/id context.
var (
	// ErrNotFound indicates the operation targeted a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates a create collided with an existing id.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrTransactionAborted indicates a batch or restore failed partway and
	// was fully rolled back.
	ErrTransactionAborted = errors.New("transaction aborted")

	// ErrBackendUnavailable indicates the persistent key-value engine could
	// not initialize; the factory degrades to in-memory storage.
	ErrBackendUnavailable = errors.New("persistent backend unavailable")

	// ErrDeserialization indicates a corrupted stored value; the cache treats
	// it as a miss and never propagates it to readers.
	ErrDeserialization = errors.New("stored value could not be decoded")

	// ErrImportFormat indicates an import payload missing its required
	// version or shape.
	ErrImportFormat = errors.New("import payload has invalid format")
)
