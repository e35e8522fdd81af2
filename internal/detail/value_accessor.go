package detail

import "unsafe"

// valueAccessor accesses an owned, mutable T.
type valueAccessor[T any] struct {
	qualifiers
}

func (a *valueAccessor[T]) ConstructCopy(dst, src *Storage) Accessor {
	Construct(dst, CopyOf(Get[T](src)))
	return a
}

func (a *valueAccessor[T]) ConstructMove(dst, src *Storage) Accessor {
	Construct(dst, MoveOf(Get[T](src)))
	return a
}

func (a *valueAccessor[T]) ConstructReference(dst, src *Storage, constant bool) Accessor {
	Reference(dst, Get[T](src))
	if constant {
		return a.typeInfo.constRef
	}
	return a.typeInfo.ref
}

func (a *valueAccessor[T]) Destruct(s *Storage) {
	destroy(Get[T](s))
	s.Destruct()
}

func (a *valueAccessor[T]) Accept(s *Storage, v Visitor) unsafe.Pointer {
	return v.Visit(unsafe.Pointer(Get[T](s)), false, false)
}

func (a *valueAccessor[T]) Set(s *Storage, value unsafe.Pointer) bool {
	AssignCopy(Get[T](s), (*T)(value))
	return true
}

func (a *valueAccessor[T]) Move(s *Storage, value unsafe.Pointer) bool {
	AssignMove(Get[T](s), (*T)(value))
	return true
}

// refAccessor accesses a mutable T owned elsewhere.
type refAccessor[T any] struct {
	qualifiers
}

func (a *refAccessor[T]) ConstructCopy(dst, src *Storage) Accessor {
	Construct(dst, CopyOf(Get[T](src)))
	return a.typeInfo.value
}

// ConstructMove copies: the referenced value belongs to someone else.
func (a *refAccessor[T]) ConstructMove(dst, src *Storage) Accessor {
	return a.ConstructCopy(dst, src)
}

func (a *refAccessor[T]) ConstructReference(dst, src *Storage, constant bool) Accessor {
	Reference(dst, Get[T](src))
	if constant {
		return a.typeInfo.constRef
	}
	return a
}

func (a *refAccessor[T]) Destruct(s *Storage) {
	s.Destruct()
}

func (a *refAccessor[T]) Accept(s *Storage, v Visitor) unsafe.Pointer {
	return v.Visit(unsafe.Pointer(Get[T](s)), false, false)
}

func (a *refAccessor[T]) Set(s *Storage, value unsafe.Pointer) bool {
	AssignCopy(Get[T](s), (*T)(value))
	return true
}

func (a *refAccessor[T]) Move(s *Storage, value unsafe.Pointer) bool {
	AssignMove(Get[T](s), (*T)(value))
	return true
}

// constRefAccessor accesses a read-only T owned elsewhere.
type constRefAccessor[T any] struct {
	qualifiers
}

func (a *constRefAccessor[T]) ConstructCopy(dst, src *Storage) Accessor {
	Construct(dst, CopyOf(Get[T](src)))
	return a.typeInfo.value
}

func (a *constRefAccessor[T]) ConstructMove(dst, src *Storage) Accessor {
	return a.ConstructCopy(dst, src)
}

func (a *constRefAccessor[T]) ConstructReference(dst, src *Storage, constant bool) Accessor {
	if !constant {
		return nil
	}
	Reference(dst, Get[T](src))
	return a
}

func (a *constRefAccessor[T]) Destruct(s *Storage) {
	s.Destruct()
}

func (a *constRefAccessor[T]) Accept(s *Storage, v Visitor) unsafe.Pointer {
	return v.Visit(unsafe.Pointer(Get[T](s)), true, false)
}

func (a *constRefAccessor[T]) Set(*Storage, unsafe.Pointer) bool  { return false }
func (a *constRefAccessor[T]) Move(*Storage, unsafe.Pointer) bool { return false }

// voidAccessor describes the absence of a value. Every operation is a no-op.
type voidAccessor struct {
	qualifiers
}

func (a *voidAccessor) ConstructCopy(*Storage, *Storage) Accessor            { return a }
func (a *voidAccessor) ConstructMove(*Storage, *Storage) Accessor            { return a }
func (a *voidAccessor) ConstructReference(*Storage, *Storage, bool) Accessor { return a }
func (a *voidAccessor) Destruct(*Storage)                                    {}
func (a *voidAccessor) Accept(*Storage, Visitor) unsafe.Pointer              { return nil }
func (a *voidAccessor) Set(*Storage, unsafe.Pointer) bool                    { return false }
func (a *voidAccessor) Move(*Storage, unsafe.Pointer) bool                   { return false }

// VoidAccessor returns the accessor for empty storage.
func VoidAccessor() Accessor {
	return voidInfo.value
}

// ConstructValue constructs v into s and returns the value accessor for T.
func ConstructValue[T any](s *Storage, v T) Accessor {
	Construct(s, v)
	return TypeInfoOf[T]().value
}

// ConstructCopyOf constructs a copy of *p into s.
func ConstructCopyOf[T any](s *Storage, p *T) Accessor {
	Construct(s, CopyOf(p))
	return TypeInfoOf[T]().value
}

// ConstructMoveOf constructs *p into s by moving from it.
func ConstructMoveOf[T any](s *Storage, p *T) Accessor {
	Construct(s, MoveOf(p))
	return TypeInfoOf[T]().value
}

// ConstructRef binds s to *p and returns the reference accessor for T.
func ConstructRef[T any](s *Storage, p *T, constant bool) Accessor {
	Reference(s, p)
	if constant {
		return TypeInfoOf[T]().constRef
	}
	return TypeInfoOf[T]().ref
}
