// Package demangle converts Borland C++ mangled symbol names into
// readable declarations.
package demangle

import (
	"errors"

	"github.com/skdltmxn/borland-go/ast"
	"github.com/skdltmxn/borland-go/internal/parser"
)

// Errors
var (
	// ErrEmptyInput indicates an empty symbol name.
	ErrEmptyInput = errors.New("demangle: empty input")

	// ErrInvalidMangledName indicates the input is not a well-formed
	// Borland mangled function name. Callers should treat such input as
	// an unmangled, opaque symbol.
	ErrInvalidMangledName = errors.New("demangle: invalid mangled name")
)

// Status is the tri-state outcome of a parse. StatusInProgress is the
// only non-terminal state; once a parse fails it stays failed.
type Status int

const (
	StatusInProgress Status = iota
	StatusSuccess
	StatusInvalidMangledName
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidMangledName:
		return "invalid mangled name"
	default:
		return "in progress"
	}
}

// Demangle converts a Borland mangled name to its readable form.
// Each call is independent and pure with respect to its input, so
// Demangle is safe to call concurrently from multiple goroutines.
func Demangle(mangled string) (string, error) {
	root, err := Parse(mangled)
	if err != nil {
		return "", err
	}
	return root.String(), nil
}

// Parse parses a mangled name and returns the AST root. There is no
// partial result: the root is nil exactly when the error is non-nil.
func Parse(mangled string) (ast.Node, error) {
	if len(mangled) == 0 {
		return nil, ErrEmptyInput
	}

	p := parser.New(ast.NewContext(), mangled)
	root := p.Parse()
	if p.Status() != parser.StatusSuccess {
		return nil, ErrInvalidMangledName
	}
	return root, nil
}

// ParseStatus reports the parse status for a mangled name without
// exposing the AST.
func ParseStatus(mangled string) Status {
	if len(mangled) == 0 {
		return StatusInvalidMangledName
	}

	p := parser.New(ast.NewContext(), mangled)
	p.Parse()
	switch p.Status() {
	case parser.StatusSuccess:
		return StatusSuccess
	case parser.StatusInvalid:
		return StatusInvalidMangledName
	default:
		return StatusInProgress
	}
}

// IsMangled reports whether the name carries the Borland function
// mangling sigil.
func IsMangled(name string) bool {
	return len(name) > 0 && name[0] == '@'
}
