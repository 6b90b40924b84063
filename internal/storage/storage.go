package storage

import "errors"

var ErrTaskNotFound = errors.New("task not found")

// TaskFilter narrows list queries. Nil fields are ignored.
type TaskFilter struct {
	Completed *bool
}
