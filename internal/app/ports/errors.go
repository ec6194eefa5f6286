package ports

import "errors"

var (
	// ErrNotFound: the agent or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: an active pending intent already exists for the agent.
	ErrConflict = errors.New("conflict")
)
