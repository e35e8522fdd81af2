package detail

import (
	"unsafe"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Accessor performs every lifecycle and access operation on a value held in
// a Storage, for exactly one type and qualification. Accessors are stateless
// singletons; the set of implementations is closed.
//
// Unless noted, the Storage passed to a method must hold a value constructed
// through this accessor.
type Accessor interface {
	// TypeInfo returns the accessed type.
	TypeInfo() *TypeInfo
	// Constant reports whether the accessed value is read-only.
	Constant() bool
	// Reference reports whether the storage holds a reference rather than
	// an owned value.
	Reference() bool

	// ConstructCopy constructs a copy of the value in src into dst and
	// returns the accessor describing dst, or nil if the value cannot be
	// read.
	ConstructCopy(dst, src *Storage) Accessor
	// ConstructMove is ConstructCopy, moving from src where possible.
	ConstructMove(dst, src *Storage) Accessor
	// ConstructReference binds dst to the value in src. A mutable
	// reference to a constant value is refused with a nil result.
	ConstructReference(dst, src *Storage, constant bool) Accessor
	// Destruct undoes the construction of s.
	Destruct(s *Storage)

	// Accept calls v with the address of the value and returns its
	// result. It returns nil without calling v when there is no value.
	Accept(s *Storage, v Visitor) unsafe.Pointer
	// Set copy-assigns the value at value, of the accessed type. It
	// reports false when the value is read-only.
	Set(s *Storage, value unsafe.Pointer) bool
	// Move move-assigns the value at value, of the accessed type. It
	// reports false when the value is read-only.
	Move(s *Storage, value unsafe.Pointer) bool

	sealed()
}

// qualifiers carries the fields shared by every accessor.
type qualifiers struct {
	typeInfo  *TypeInfo
	constant  bool
	reference bool
}

func (q *qualifiers) TypeInfo() *TypeInfo { return q.typeInfo }
func (q *qualifiers) Constant() bool      { return q.constant }
func (q *qualifiers) Reference() bool     { return q.reference }
func (q *qualifiers) sealed()             {}

// Describe formats the type and qualifiers of a, for example "Point const &".
func Describe(a Accessor) string {
	return FormatType(a.TypeInfo(), a.Constant(), a.Reference())
}

// FormatType formats a type name with its qualifiers.
func FormatType(t *TypeInfo, constant, reference bool) string {
	name := t.Name()
	if constant {
		name += " const"
	}
	if reference {
		name += " &"
	}
	return name
}

// GetAs returns the address of the value in s presented as target, for
// modification. buf, when non-nil, must be a buffer of type target; it
// enables registered conversions and copies of non-referable values.
func GetAs(a Accessor, s *Storage, target *TypeInfo, buf *Buffer) (unsafe.Pointer, error) {
	return getAs(a, s, target, buf, true)
}

// GetAsConst is GetAs for read-only access.
func GetAsConst(a Accessor, s *Storage, target *TypeInfo, buf *Buffer) (unsafe.Pointer, error) {
	return getAs(a, s, target, buf, false)
}

func getAs(a Accessor, s *Storage, target *TypeInfo, buf *Buffer, mutable bool) (unsafe.Pointer, error) {
	if buf != nil && buf.typeInfo != target {
		panic("detail: buffer of " + buf.typeInfo.Name() + " used to get " + target.Name())
	}

	if target == a.TypeInfo() {
		v := directVisitor{buffer: buf, mutable: mutable}
		if p := a.Accept(s, &v); p != nil {
			return p, nil
		}
		if mutable && v.constant {
			return nil, types.NewTypeError("get", Describe(a), FormatType(target, false, true), types.ErrConstantValue)
		}
		return nil, types.NewTypeError("get", Describe(a), target.Name(), types.ErrIncompatibleType)
	}

	v := conversionVisitor{source: a.TypeInfo(), target: target, buffer: buf, mutable: mutable}
	if p := a.Accept(s, &v); p != nil {
		return p, nil
	}
	if v.constBlocked {
		return nil, types.NewTypeError("get", Describe(a), FormatType(target, false, true), types.ErrConstantValue)
	}
	return nil, types.NewTypeError("get", Describe(a), target.Name(), types.ErrIncompatibleType)
}

// SetAs copy-assigns the value at value, of type source, to the value in s.
// When source differs from the accessed type, a conversion registered on
// source or one of its bases is applied.
func SetAs(a Accessor, s *Storage, source *TypeInfo, value unsafe.Pointer) error {
	return assign(a, s, source, value, false)
}

// MoveAs is SetAs, moving from value.
func MoveAs(a Accessor, s *Storage, source *TypeInfo, value unsafe.Pointer) error {
	return assign(a, s, source, value, true)
}

// SetAsFrom assigns the value accessed by src to the value in s. The source
// is moved from only when it is a non-constant temporary.
func SetAsFrom(a Accessor, s *Storage, src Accessor, srcStorage *Storage) error {
	return assignFrom(a, s, src, srcStorage, false)
}

// MoveAsFrom assigns the value accessed by src to the value in s, moving
// from it unless it is constant.
func MoveAsFrom(a Accessor, s *Storage, src Accessor, srcStorage *Storage) error {
	return assignFrom(a, s, src, srcStorage, true)
}

func assignFrom(a Accessor, s *Storage, src Accessor, srcStorage *Storage, consume bool) error {
	v := assignVisitor{target: a, storage: s, source: src.TypeInfo(), consume: consume}
	src.Accept(srcStorage, &v)
	if !v.visited {
		return types.NewTypeError(opName(consume), Describe(src), Describe(a), types.ErrIncompatibleAssignment)
	}
	return v.err
}

// assignResult is the outcome of an assignment search.
type assignResult int

const (
	noPath assignResult = iota
	refused
	assigned
)

func assign(a Accessor, s *Storage, source *TypeInfo, value unsafe.Pointer, move bool) error {
	result := noPath
	if source == a.TypeInfo() {
		if apply(a, s, value, move) {
			return nil
		}
		result = refused
	}

	switch convertAndAssign(a, s, source, value, move) {
	case assigned:
		return nil
	case refused:
		result = refused
	}

	if result == refused {
		return types.NewTypeError(opName(move), Describe(a), "", types.ErrConstantValue)
	}
	return types.NewTypeError(opName(move), source.Name(), Describe(a), types.ErrIncompatibleAssignment)
}

// convertAndAssign walks the conversions and bases of from looking for an
// edge into the accessed type.
func convertAndAssign(a Accessor, s *Storage, from *TypeInfo, value unsafe.Pointer, move bool) assignResult {
	result := noPath
	for _, c := range from.Conversions() {
		if c.typeInfo != a.TypeInfo() {
			continue
		}
		var ok bool
		if move {
			ok = c.move(a, s, value)
		} else {
			ok = c.set(a, s, value)
		}
		if ok {
			return assigned
		}
		result = refused
	}

	for _, b := range from.Bases() {
		upcast := b.upcast(value)
		if b.typeInfo == a.TypeInfo() {
			if apply(a, s, upcast, move) {
				return assigned
			}
			return refused
		}
		switch convertAndAssign(a, s, b.typeInfo, upcast, move) {
		case assigned:
			return assigned
		case refused:
			result = refused
		}
	}
	return result
}

func apply(a Accessor, s *Storage, value unsafe.Pointer, move bool) bool {
	if move {
		return a.Move(s, value)
	}
	return a.Set(s, value)
}

func opName(move bool) string {
	if move {
		return "move"
	}
	return "set"
}
