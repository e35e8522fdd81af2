package detail

import "unsafe"

// PropertyPart is one way of reading or writing a property of type V on an
// owner of type T. A property combines parts in registration order: reads
// use the first part that can read, writes the first part that can write.
type PropertyPart[T, V any] interface {
	// read returns the property value of owner. temporary is set when the
	// returned address is a fresh copy produced for this read.
	read(owner *T, constOwner bool) (value *V, constant, temporary, ok bool)
	// write assigns value to the property of owner, reporting false when
	// this part cannot write.
	write(owner *T, constOwner bool, value *V, move bool) bool
	readable(constOwner bool) bool
	writable(constOwner bool) bool
}

// FieldPart exposes the member addressed by member. It is writable through
// mutable owners.
func FieldPart[T, V any](member func(*T) *V) PropertyPart[T, V] {
	return fieldPart[T, V]{member: member}
}

// ConstFieldPart exposes a member that is never written through the
// property.
func ConstFieldPart[T, V any](member func(*T) *V) PropertyPart[T, V] {
	return constFieldPart[T, V]{member: member}
}

// GetterPart reads the property by calling get; the result is a temporary.
func GetterPart[T, V any](get func(*T) V) PropertyPart[T, V] {
	return getterPart[T, V]{get: get}
}

// RefGetterPart reads and writes through the reference returned by get. It
// is only available on mutable owners.
func RefGetterPart[T, V any](get func(*T) *V) PropertyPart[T, V] {
	return refGetterPart[T, V]{get: get}
}

// ConstRefGetterPart reads through the reference returned by get without
// ever writing to it.
func ConstRefGetterPart[T, V any](get func(*T) *V) PropertyPart[T, V] {
	return constRefGetterPart[T, V]{get: get}
}

// SetterPart writes the property by passing a value to set.
func SetterPart[T, V any](set func(*T, V)) PropertyPart[T, V] {
	return setterPart[T, V]{set: set}
}

// PtrSetterPart writes the property by passing a pointer to set. When
// moving, set receives the source itself and may take its contents.
func PtrSetterPart[T, V any](set func(*T, *V)) PropertyPart[T, V] {
	return ptrSetterPart[T, V]{set: set}
}

type fieldPart[T, V any] struct{ member func(*T) *V }

func (p fieldPart[T, V]) read(owner *T, constOwner bool) (*V, bool, bool, bool) {
	return p.member(owner), constOwner, false, true
}

func (p fieldPart[T, V]) write(owner *T, constOwner bool, value *V, move bool) bool {
	if constOwner {
		return false
	}
	assignValue(p.member(owner), value, move)
	return true
}

func (fieldPart[T, V]) readable(bool) bool            { return true }
func (fieldPart[T, V]) writable(constOwner bool) bool { return !constOwner }

type constFieldPart[T, V any] struct{ member func(*T) *V }

func (p constFieldPart[T, V]) read(owner *T, _ bool) (*V, bool, bool, bool) {
	return p.member(owner), true, false, true
}

func (constFieldPart[T, V]) write(*T, bool, *V, bool) bool { return false }
func (constFieldPart[T, V]) readable(bool) bool            { return true }
func (constFieldPart[T, V]) writable(bool) bool            { return false }

type getterPart[T, V any] struct{ get func(*T) V }

func (p getterPart[T, V]) read(owner *T, _ bool) (*V, bool, bool, bool) {
	v := p.get(owner)
	return &v, false, true, true
}

func (getterPart[T, V]) write(*T, bool, *V, bool) bool { return false }
func (getterPart[T, V]) readable(bool) bool            { return true }
func (getterPart[T, V]) writable(bool) bool            { return false }

type refGetterPart[T, V any] struct{ get func(*T) *V }

func (p refGetterPart[T, V]) read(owner *T, constOwner bool) (*V, bool, bool, bool) {
	if constOwner {
		return nil, false, false, false
	}
	return p.get(owner), false, false, true
}

func (p refGetterPart[T, V]) write(owner *T, constOwner bool, value *V, move bool) bool {
	if constOwner {
		return false
	}
	assignValue(p.get(owner), value, move)
	return true
}

func (refGetterPart[T, V]) readable(constOwner bool) bool { return !constOwner }
func (refGetterPart[T, V]) writable(constOwner bool) bool { return !constOwner }

type constRefGetterPart[T, V any] struct{ get func(*T) *V }

func (p constRefGetterPart[T, V]) read(owner *T, _ bool) (*V, bool, bool, bool) {
	return p.get(owner), true, false, true
}

func (constRefGetterPart[T, V]) write(*T, bool, *V, bool) bool { return false }
func (constRefGetterPart[T, V]) readable(bool) bool            { return true }
func (constRefGetterPart[T, V]) writable(bool) bool            { return false }

type setterPart[T, V any] struct{ set func(*T, V) }

func (setterPart[T, V]) read(*T, bool) (*V, bool, bool, bool) { return nil, false, false, false }

func (p setterPart[T, V]) write(owner *T, constOwner bool, value *V, move bool) bool {
	if constOwner {
		return false
	}
	if move {
		p.set(owner, MoveOf(value))
	} else {
		p.set(owner, CopyOf(value))
	}
	return true
}

func (setterPart[T, V]) readable(bool) bool            { return false }
func (setterPart[T, V]) writable(constOwner bool) bool { return !constOwner }

type ptrSetterPart[T, V any] struct{ set func(*T, *V) }

func (ptrSetterPart[T, V]) read(*T, bool) (*V, bool, bool, bool) { return nil, false, false, false }

func (p ptrSetterPart[T, V]) write(owner *T, constOwner bool, value *V, move bool) bool {
	if constOwner {
		return false
	}
	if move {
		p.set(owner, value)
		return true
	}
	v := CopyOf(value)
	p.set(owner, &v)
	return true
}

func (ptrSetterPart[T, V]) readable(bool) bool            { return false }
func (ptrSetterPart[T, V]) writable(constOwner bool) bool { return !constOwner }

func assignValue[V any](dst, src *V, move bool) {
	if move {
		AssignMove(dst, src)
	} else {
		AssignCopy(dst, src)
	}
}

// PropertyAccessor is the accessor of a property bound to an owner. Its
// storage holds the owner's address; the accessed value is the property.
type PropertyAccessor interface {
	Accessor
	// Bind stores owner in s and returns the accessor for the bound
	// property.
	Bind(s *Storage, owner unsafe.Pointer) Accessor
	// Access constructs a copy of the property value of owner in s and
	// returns its value accessor, or nil when the property cannot be read.
	Access(s *Storage, owner unsafe.Pointer) Accessor
	// Readable reports whether any part can read the property.
	Readable() bool
	// Writable reports whether any part can write the property.
	Writable() bool
}

type propertyAccessor[T, V any] struct {
	qualifiers
	constOwner bool
	parts      []PropertyPart[T, V]
	// constFlavor is the accessor used for constant owners; nil on the
	// constant flavor itself.
	constFlavor *propertyAccessor[T, V]
}

// NewPropertyAccessors returns the mutable-owner and constant-owner
// accessors for a property of type V on T made of parts.
func NewPropertyAccessors[T, V any](parts ...PropertyPart[T, V]) (mutable, constant PropertyAccessor) {
	info := TypeInfoOf[V]()
	c := &propertyAccessor[T, V]{constOwner: true, parts: parts}
	c.qualifiers = qualifiers{typeInfo: info, constant: !c.Writable(), reference: true}
	m := &propertyAccessor[T, V]{parts: parts, constFlavor: c}
	m.qualifiers = qualifiers{typeInfo: info, constant: !m.Writable(), reference: true}
	return m, c
}

func (a *propertyAccessor[T, V]) Bind(s *Storage, owner unsafe.Pointer) Accessor {
	Reference(s, (*T)(owner))
	return a
}

func (a *propertyAccessor[T, V]) Access(s *Storage, owner unsafe.Pointer) Accessor {
	o := (*T)(owner)
	for _, p := range a.parts {
		v, _, temporary, ok := p.read(o, a.constOwner)
		if !ok {
			continue
		}
		if temporary {
			Construct(s, *v)
		} else {
			Construct(s, CopyOf(v))
		}
		return a.typeInfo.value
	}
	return nil
}

func (a *propertyAccessor[T, V]) Readable() bool {
	for _, p := range a.parts {
		if p.readable(a.constOwner) {
			return true
		}
	}
	return false
}

func (a *propertyAccessor[T, V]) Writable() bool {
	for _, p := range a.parts {
		if p.writable(a.constOwner) {
			return true
		}
	}
	return false
}

func (a *propertyAccessor[T, V]) ConstructCopy(dst, src *Storage) Accessor {
	return a.Access(dst, unsafe.Pointer(Get[T](src)))
}

func (a *propertyAccessor[T, V]) ConstructMove(dst, src *Storage) Accessor {
	return a.ConstructCopy(dst, src)
}

func (a *propertyAccessor[T, V]) ConstructReference(dst, src *Storage, constant bool) Accessor {
	owner := unsafe.Pointer(Get[T](src))
	switch {
	case constant && a.constFlavor != nil:
		return a.constFlavor.Bind(dst, owner)
	case !constant && (a.constOwner || a.Constant()):
		return nil
	default:
		return a.Bind(dst, owner)
	}
}

func (a *propertyAccessor[T, V]) Destruct(s *Storage) {
	s.Destruct()
}

func (a *propertyAccessor[T, V]) Accept(s *Storage, v Visitor) unsafe.Pointer {
	owner := Get[T](s)
	for _, p := range a.parts {
		if value, constant, temporary, ok := p.read(owner, a.constOwner); ok {
			return v.Visit(unsafe.Pointer(value), constant, temporary)
		}
	}
	return nil
}

func (a *propertyAccessor[T, V]) Set(s *Storage, value unsafe.Pointer) bool {
	return a.write(s, value, false)
}

func (a *propertyAccessor[T, V]) Move(s *Storage, value unsafe.Pointer) bool {
	return a.write(s, value, true)
}

func (a *propertyAccessor[T, V]) write(s *Storage, value unsafe.Pointer, move bool) bool {
	owner := Get[T](s)
	for _, p := range a.parts {
		if p.write(owner, a.constOwner, (*V)(value), move) {
			return true
		}
	}
	return false
}
