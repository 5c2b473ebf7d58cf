package list

import "github.com/pkg/errors"

var (
	// ErrInvalidHandle is returned when operation is called on nil or destructed list.
	ErrInvalidHandle = errors.New("invalid list handle")

	// ErrInvalidArgument is returned when value is nil, has wrong size or record size is not positive.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmpty is returned when list contains no nodes.
	ErrEmpty = errors.New("list is empty")

	// ErrNotFound is returned when no node is equal to the reference value.
	ErrNotFound = errors.New("reference value not found")

	// ErrEndOfTraversal is returned when cursor is not set or walked past the first or the last node.
	ErrEndOfTraversal = errors.New("end of traversal")
)
