package bridge

import (
	"errors"
	"fmt"
)

// ErrNoPath indicates a document URI from which no filesystem path can
// be derived, so no unit can be built for it.
var ErrNoPath = errors.New("document has no filesystem path")

// BuildError reports a compilation unit that could not be constructed.
// The cache's previous unit, if any, is still intact when this is
// returned.
type BuildError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build unit %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}
