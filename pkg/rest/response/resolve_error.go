package response

import (
	"errors"

	"github.com/mayhew-amaya/taskflow-api/internal/storage"
)

// ResolveError converts a storage error into a client-facing one. Anything
// that is not an expected domain error becomes an opaque internal error.
func ResolveError(err error) Error {
	switch {
	case errors.Is(err, storage.ErrTaskNotFound):
		return NewNotFoundError("task not found")
	default:
		return NewInternalError()
	}
}
