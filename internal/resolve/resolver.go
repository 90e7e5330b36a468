// Package resolve turns module paths into source text.
//
// A Resolver is one of the two delegation points of the compiler (the other is
// mangle.Mangler). Implementations here cover in-memory modules and the on-disk
// layout described by wesl.toml.
package resolve

import (
	"errors"
	"fmt"

	"wesl/internal/source"
)

// Resolver loads the source of a module.
type Resolver interface {
	// ResolveSource returns the full source text of path.
	ResolveSource(path source.ModulePath) (string, error)
	// DisplayName returns a human friendly name for path, e.g. a file name.
	DisplayName(path source.ModulePath) (string, bool)
	// FSPath returns the file backing path, if any.
	FSPath(path source.ModulePath) (string, bool)
}

// Reason classifies resolution failures.
type Reason uint8

const (
	ReasonNotFound Reason = iota + 1
	ReasonIO
	ReasonUnknownPackage
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not found"
	case ReasonIO:
		return "io error"
	case ReasonUnknownPackage:
		return "unknown package"
	default:
		return "unknown"
	}
}

// ErrModuleNotFound matches every *Error with ReasonNotFound or ReasonUnknownPackage.
var ErrModuleNotFound = errors.New("module not found")

// Error is returned by resolvers in this package.
type Error struct {
	Path   source.ModulePath
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolve %s: %s", e.Path, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrModuleNotFound) match missing modules.
func (e *Error) Is(target error) bool {
	return target == ErrModuleNotFound && (e.Reason == ReasonNotFound || e.Reason == ReasonUnknownPackage)
}

func notFound(path source.ModulePath) error {
	return &Error{Path: path, Reason: ReasonNotFound}
}

var (
	_ Resolver = (*VirtualResolver)(nil)
	_ Resolver = (*FileResolver)(nil)
)
