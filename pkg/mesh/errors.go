package mesh

import (
	"errors"
	"fmt"
	"strings"
)

// Mesh errors.
var (
	ErrUnsupportedFormat      = errors.New("unsupported mesh format")
	ErrMalformedFaceGroup     = errors.New("malformed face group")
	ErrArgumentList           = errors.New("argument list failure")
	ErrMissingMaterialLibName = errors.New("missing material library name")
)

// Material library errors.
var (
	ErrInvalidInstruction  = errors.New("invalid material instruction")
	ErrInvalidValue        = errors.New("invalid material value")
	ErrMissingMaterialName = errors.New("missing material name")
	ErrMissingValue        = errors.New("missing material value")
)

// ParseError reports the first bad line of a mesh file.
type ParseError struct {
	Line   int      // 0-based
	Kind   error    // one of the mesh sentinel errors
	Token  string   // offending face group, if any
	Tokens []string // raw tokens of the line
}

func (e *ParseError) Error() string {
	switch {
	case e.Token != "":
		return fmt.Sprintf("line %d: %v %q", e.Line, e.Kind, e.Token)
	case len(e.Tokens) > 0:
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Kind, strings.Join(e.Tokens, " "))
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
	}
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Value types reported by MaterialError.Expected.
const (
	ExpectInt    = "int"
	ExpectFloat  = "float"
	ExpectString = "string"
)

// MaterialError reports the first bad line of a material library.
type MaterialError struct {
	Line      int // 0-based
	Kind      error
	Directive string
	Value     string // unparsable value for ErrInvalidValue
	Expected  string // ExpectInt, ExpectFloat or ExpectString
}

func (e *MaterialError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidValue):
		return fmt.Sprintf("line %d: %v for %s: %q is not a %s", e.Line, e.Kind, e.Directive, e.Value, e.Expected)
	case errors.Is(e.Kind, ErrMissingValue):
		return fmt.Sprintf("line %d: %v for %s: expected %s", e.Line, e.Kind, e.Directive, e.Expected)
	case e.Directive != "":
		return fmt.Sprintf("line %d: %v %q", e.Line, e.Kind, e.Directive)
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
	}
}

func (e *MaterialError) Unwrap() error { return e.Kind }

// LibraryError ties a load failure to the library that caused it.
type LibraryError struct {
	Library string
	Err     error
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("material library %s: %v", e.Library, e.Err)
}

func (e *LibraryError) Unwrap() error { return e.Err }
