package changelog

import (
	"errors"
	"fmt"
)

// ErrNoTemplate is returned when an entry template and the default template
// are both blank.
var ErrNoTemplate = errors.New("no changelog entry template configured")

// ErrTypesRequired is returned when no changelog types are configured.
var ErrTypesRequired = errors.New("changelog types are required")

// ErrClipboard is returned when the clipboard sink cannot be written.
var ErrClipboard = errors.New("copying changelog to clipboard failed")

// WriteError reports a failure to write the changelog file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing changelog to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
