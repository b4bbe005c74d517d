package revision

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Resolver and Repository implementations.
// All of them can be checked with errors.Is().

// ErrRevisionNotFound is returned when a revision specification names no
// object in the repository.
var ErrRevisionNotFound = errors.New("revision not found")

// ErrUnsupportedObjectType is returned when a revision resolves to an object
// that is neither a commit nor an annotated tag (a tree or blob).
var ErrUnsupportedObjectType = errors.New("unsupported object type")

// ErrMissingObject is returned when a resolved object id is absent from the
// object store.
var ErrMissingObject = errors.New("missing object")

// ErrInvalidIgnorePattern is returned by Filter when an ignore pattern is not
// a valid regular expression.
var ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

// wrapf adds context to err while keeping it matchable with errors.Is().
func wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
