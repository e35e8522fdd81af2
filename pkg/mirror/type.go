package mirror

import (
	"cmp"
	"reflect"

	"github.com/mesh-intelligence/mirror/internal/detail"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Type identifies a type together with the qualifiers of a value of it.
// Types are comparable with == and ordered by Compare.
type Type struct {
	info      *detail.TypeInfo
	constant  bool
	reference bool
}

// TypeOf returns the Type of owned values of T.
func TypeOf[T any]() Type {
	return Type{info: detail.TypeInfoOf[T]()}
}

// ConstTypeOf returns the Type of constant values of T.
func ConstTypeOf[T any]() Type {
	return Type{info: detail.TypeInfoOf[T](), constant: true}
}

// RefTypeOf returns the Type of mutable references to T.
func RefTypeOf[T any]() Type {
	return Type{info: detail.TypeInfoOf[T](), reference: true}
}

// ConstRefTypeOf returns the Type of constant references to T.
func ConstRefTypeOf[T any]() Type {
	return Type{info: detail.TypeInfoOf[T](), constant: true, reference: true}
}

// VoidType returns the Type of an empty Object.
func VoidType() Type {
	return Type{info: detail.VoidTypeInfo()}
}

// LookupType returns the unqualified Type registered under name.
func LookupType(name string) (Type, bool) {
	info, ok := detail.Lookup(name)
	if !ok {
		return Type{}, false
	}
	return Type{info: info}, true
}

// Types returns every type something was registered for, in creation order.
func Types() []Type {
	var out []Type
	for _, info := range detail.All() {
		if info.Registered() {
			out = append(out, Type{info: info})
		}
	}
	return out
}

func typeOfAccessor(a detail.Accessor) Type {
	return Type{info: a.TypeInfo(), constant: a.Constant(), reference: a.Reference()}
}

// Name returns the registered name of the type, without qualifiers.
func (t Type) Name() string {
	if t.info == nil {
		return ""
	}
	return t.info.Name()
}

// String formats the type with its qualifiers, for example "Point const &".
func (t Type) String() string {
	if t.info == nil {
		return "<nil>"
	}
	return detail.FormatType(t.info, t.constant, t.reference)
}

// GoType returns the underlying Go type; nil for void.
func (t Type) GoType() reflect.Type {
	if t.info == nil {
		return nil
	}
	return t.info.GoType()
}

func (t Type) Constant() bool  { return t.constant }
func (t Type) Reference() bool { return t.reference }

// IsVoid reports whether t is the type of an empty Object.
func (t Type) IsVoid() bool {
	return t.info == detail.VoidTypeInfo()
}

// Unqualified returns t without its qualifiers.
func (t Type) Unqualified() Type {
	return Type{info: t.info}
}

// DerivesFrom reports whether base is t itself or one of its registered
// bases, ignoring qualifiers.
func (t Type) DerivesFrom(base Type) bool {
	if t.info == nil || base.info == nil {
		return false
	}
	return t.info.DerivesFrom(base.info)
}

// Compare orders types by creation, then constness, then reference. The
// order is stable within a process only.
func (t Type) Compare(u Type) int {
	switch {
	case t.info == u.info:
	case t.info == nil:
		return -1
	case u.info == nil:
		return 1
	default:
		if c := t.info.Compare(u.info); c != 0 {
			return c
		}
	}
	if c := cmpBool(t.constant, u.constant); c != 0 {
		return c
	}
	return cmpBool(t.reference, u.reference)
}

// Equal reports whether t and u are the same qualified type.
func (t Type) Equal(u Type) bool {
	return t == u
}

// Less reports whether t orders before u.
func (t Type) Less(u Type) bool {
	return t.Compare(u) < 0
}

// Record returns the catalog description of the unqualified type.
func (t Type) Record() types.TypeRecord {
	return t.info.Record()
}

func cmpBool(a, b bool) int {
	return cmp.Compare(b2i(a), b2i(b))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
