package detail

import (
	"unsafe"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Property is a named slot of a type, exposed through one accessor for
// mutable owners and one for constant owners.
type Property struct {
	name     string
	owner    *TypeInfo
	mutable  PropertyAccessor
	constant PropertyAccessor
}

// NewProperty returns the property name of type V on T built from parts.
func NewProperty[T, V any](name string, parts ...PropertyPart[T, V]) *Property {
	mutable, constant := NewPropertyAccessors(parts...)
	return &Property{
		name:     name,
		owner:    TypeInfoOf[T](),
		mutable:  mutable,
		constant: constant,
	}
}

// Name returns the name the property was registered under.
func (p *Property) Name() string {
	return p.name
}

// Owner returns the type the property belongs to.
func (p *Property) Owner() *TypeInfo {
	return p.owner
}

// TypeInfo returns the type of the property value.
func (p *Property) TypeInfo() *TypeInfo {
	return p.mutable.TypeInfo()
}

// Accessor returns the accessor used for owners of the given constness.
func (p *Property) Accessor(constant bool) PropertyAccessor {
	if constant {
		return p.constant
	}
	return p.mutable
}

// Construct binds the property of owner into s. A temporary owner does not
// outlive the call, so the property value is copied out of it instead and
// the result is an owned, writable value detached from any owner.
func (p *Property) Construct(s *Storage, owner unsafe.Pointer, constant, temporary bool) (Accessor, error) {
	a := p.Accessor(constant)
	var result Accessor
	switch {
	case temporary:
		result = a.Access(s, owner)
	case a.Readable() || a.Writable():
		result = a.Bind(s, owner)
	}
	if result == nil {
		return nil, types.NewTypeError("property", p.owner.Name(), p.name, types.ErrPropertyAccess)
	}
	return result, nil
}

// FindProperty looks name up on t and then, depth first, on its bases. It
// returns the property and owner adjusted to the type declaring it.
func FindProperty(t *TypeInfo, owner unsafe.Pointer, name string) (*Property, unsafe.Pointer) {
	if p, ok := t.Property(name); ok {
		return p, owner
	}
	for _, b := range t.Bases() {
		if p, adjusted := FindProperty(b.typeInfo, b.upcast(owner), name); p != nil {
			return p, adjusted
		}
	}
	return nil, nil
}

// propertyVisitor constructs a property of the visited owner.
type propertyVisitor struct {
	source  *TypeInfo
	name    string
	dst     *Storage
	visited bool
	result  Accessor
	err     error
}

func (v *propertyVisitor) Visit(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer {
	v.visited = true
	p, owner := FindProperty(v.source, value, v.name)
	if p == nil {
		v.err = types.NewTypeError("property", v.source.Name(), v.name, types.ErrPropertyNotFound)
		return nil
	}
	v.result, v.err = p.Construct(v.dst, owner, constant, temporary)
	return nil
}

// GetProperty constructs into dst the property name of the value accessed
// by a in s, and returns the accessor describing dst.
func GetProperty(a Accessor, s *Storage, dst *Storage, name string) (Accessor, error) {
	v := propertyVisitor{source: a.TypeInfo(), name: name, dst: dst}
	a.Accept(s, &v)
	if !v.visited {
		return nil, types.NewTypeError("property", Describe(a), name, types.ErrPropertyAccess)
	}
	return v.result, v.err
}
