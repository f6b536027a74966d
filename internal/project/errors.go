package project

import (
	"errors"
	"fmt"
)

// ErrExtendsDepth indicates an extends chain longer than the supported
// maximum, which usually means a cycle.
var ErrExtendsDepth = errors.New("extends chain too deep")

// ParseError reports a configuration file that exists but cannot be
// used. It aborts the request that triggered resolution; a missing file
// is never a ParseError.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
