package detail

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Base is an edge from a derived type to one of its bases. The upcast
// function turns the address of a derived value into the address of its
// base part.
type Base struct {
	typeInfo *TypeInfo
	upcast   func(unsafe.Pointer) unsafe.Pointer
}

// NewBase returns the edge from T to B using upcast to adjust addresses.
func NewBase[T, B any](upcast func(*T) *B) Base {
	return Base{
		typeInfo: TypeInfoOf[B](),
		upcast: func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(upcast((*T)(p)))
		},
	}
}

// EmbeddedBase returns the edge from struct type T to the type B it embeds.
// The upcast adds the offset of the embedded field.
func EmbeddedBase[T, B any]() (Base, error) {
	derived, base := reflect.TypeFor[T](), reflect.TypeFor[B]()
	if derived.Kind() == reflect.Struct {
		for i := range derived.NumField() {
			f := derived.Field(i)
			if !f.Anonymous || f.Type != base {
				continue
			}
			offset := f.Offset
			return Base{
				typeInfo: TypeInfoOf[B](),
				upcast: func(p unsafe.Pointer) unsafe.Pointer {
					return unsafe.Add(p, offset)
				},
			}, nil
		}
	}
	return Base{}, fmt.Errorf("%s does not embed %s: %w", derived, base, types.ErrUnrelatedType)
}

// TypeInfo returns the base type.
func (b Base) TypeInfo() *TypeInfo {
	return b.typeInfo
}

// Upcast adjusts the address of a derived value to its base part.
func (b Base) Upcast(p unsafe.Pointer) unsafe.Pointer {
	return b.upcast(p)
}
