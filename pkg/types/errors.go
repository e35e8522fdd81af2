package types

import (
	"errors"
	"fmt"
)

// Value access errors.
var (
	ErrIncompatibleType       = errors.New("accessing value as incompatible type")
	ErrIncompatibleAssignment = errors.New("setting value from incompatible type")
	ErrConstantValue          = errors.New("setting constant value")
	ErrUnrelatedType          = errors.New("type is not derived from bound type")
	ErrVoidObject             = errors.New("object holds no value")
)

// Property errors.
var (
	ErrPropertyNotFound  = errors.New("property not registered")
	ErrPropertyAccess    = errors.New("could not access property")
	ErrDuplicateProperty = errors.New("property already registered")
)

// Registration errors.
var (
	ErrNameTaken      = errors.New("name already registered for a different type")
	ErrCyclicBase     = errors.New("base registration would create a cycle")
	ErrNotConvertible = errors.New("types are not convertible")
	ErrNoFactory      = errors.New("type has no registered factory")
	ErrTypeNotFound   = errors.New("type not registered")
)

// TypeError reports a failed operation between two types. It unwraps to one
// of the sentinel errors above so callers can match with errors.Is.
type TypeError struct {
	Op   string // operation that failed: get, set, move, construct, property
	From string // source type, including qualifiers
	To   string // target type or property name
	Err  error
}

func (e *TypeError) Error() string {
	switch {
	case e.To == "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.From, e.Err)
	case e.Op == "property":
		return fmt.Sprintf("property '%s' of type '%s': %v", e.To, e.From, e.Err)
	default:
		return fmt.Sprintf("%s %s as %s: %v", e.Op, e.From, e.To, e.Err)
	}
}

// Unwrap returns the underlying sentinel error.
func (e *TypeError) Unwrap() error {
	return e.Err
}

// NewTypeError creates a TypeError for op between from and to.
func NewTypeError(op, from, to string, err error) *TypeError {
	return &TypeError{Op: op, From: from, To: to, Err: err}
}
