package domain

import "errors"

var (
	// ErrNotFound is returned when a record addressed by id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidNode wraps field-level validation failures.
	ErrInvalidNode = errors.New("invalid node")

	// ErrDanglingParent is returned when a parent id does not resolve to a node
	// of the same project.
	ErrDanglingParent = errors.New("parent node does not exist in project")

	// ErrCycle is returned when a reparent would make a node its own ancestor.
	ErrCycle = errors.New("reparent would create a cycle")

	// ErrConflict is returned when a collection was written by someone else
	// between load and save.
	ErrConflict = errors.New("collection was modified concurrently")
)
