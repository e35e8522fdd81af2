package detail

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Conversion is a one-hop edge from the owning type to a target type.
//
// get constructs the converted value into a buffer of the target type. set
// and move build a target value from the source (by copy or by consuming it)
// and hand it to the accessor's Move.
type Conversion struct {
	typeInfo *TypeInfo
	get      func(value unsafe.Pointer, buf *Buffer) unsafe.Pointer
	set      func(a Accessor, s *Storage, value unsafe.Pointer) bool
	move     func(a Accessor, s *Storage, value unsafe.Pointer) bool
}

// NewConversion returns the edge from T to U computed by convert.
func NewConversion[T, U any](convert func(*T) U) Conversion {
	return NewConsumingConversion(convert, convert)
}

// NewConsumingConversion is NewConversion with a separate function used when
// the source may be consumed.
func NewConsumingConversion[T, U any](convert, consume func(*T) U) Conversion {
	return Conversion{
		typeInfo: TypeInfoOf[U](),
		get: func(value unsafe.Pointer, buf *Buffer) unsafe.Pointer {
			return unsafe.Pointer(Fill(buf, convert((*T)(value))))
		},
		set: func(a Accessor, s *Storage, value unsafe.Pointer) bool {
			target := convert((*T)(value))
			return a.Move(s, unsafe.Pointer(&target))
		},
		move: func(a Accessor, s *Storage, value unsafe.Pointer) bool {
			target := consume((*T)(value))
			return a.Move(s, unsafe.Pointer(&target))
		},
	}
}

// NewCast returns the edge from T to U following Go's conversion rules
// (numeric types, named types over the same underlying type, and so on).
func NewCast[T, U any]() (Conversion, error) {
	from, to := reflect.TypeFor[T](), reflect.TypeFor[U]()
	if !from.ConvertibleTo(to) {
		return Conversion{}, fmt.Errorf("cast %s to %s: %w", from, to, types.ErrNotConvertible)
	}
	return NewConversion(func(v *T) U {
		var out U
		reflect.ValueOf(&out).Elem().Set(reflect.ValueOf(v).Elem().Convert(to))
		return out
	}), nil
}

// TypeInfo returns the target type.
func (c Conversion) TypeInfo() *TypeInfo {
	return c.typeInfo
}

// Get converts value into buf, which must be of the target type.
func (c Conversion) Get(value unsafe.Pointer, buf *Buffer) unsafe.Pointer {
	return c.get(value, buf)
}

// Set converts a copy of value and assigns it through a.
func (c Conversion) Set(a Accessor, s *Storage, value unsafe.Pointer) bool {
	return c.set(a, s, value)
}

// Move converts value, possibly consuming it, and assigns it through a.
func (c Conversion) Move(a Accessor, s *Storage, value unsafe.Pointer) bool {
	return c.move(a, s, value)
}
