package mirror

import (
	"reflect"
	"unsafe"

	"github.com/mesh-intelligence/mirror/internal/detail"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Object holds one value whose dynamic type is T or a type registered as
// deriving from T. An interface bound admits every type implementing it;
// Object[any] is unbounded.
//
// An Object is not safe for concurrent mutation. The zero Object is not
// usable; construct one with New, Copy, Move, Ref, ConstRef, Void or one of
// the conversions from another Object.
type Object[T any] struct {
	storage  detail.Storage
	accessor detail.Accessor
}

// Reflected is implemented by every Object regardless of its bound.
type Reflected interface {
	Type() Type
	erased() (detail.Accessor, *detail.Storage)
}

func (o *Object[T]) erased() (detail.Accessor, *detail.Storage) {
	return o.accessor, &o.storage
}

// New returns an Object owning v. The dynamic type is the static type T, so
// New[any] would hold an interface value; use Of or NewAs for that.
func New[T any](v T) *Object[T] {
	o := &Object[T]{}
	o.accessor = detail.ConstructValue(&o.storage, v)
	return o
}

// Of returns an unbounded Object owning v.
func Of[D any](v D) *Object[any] {
	o := &Object[any]{}
	o.accessor = detail.ConstructValue(&o.storage, v)
	return o
}

// NewAs returns an Object bounded by T owning v, whose type D must be
// related to T.
func NewAs[T, D any](v D) (*Object[T], error) {
	if err := checkBound[T](detail.TypeInfoOf[D](), "construct"); err != nil {
		return nil, err
	}
	o := &Object[T]{}
	o.accessor = detail.ConstructValue(&o.storage, v)
	return o, nil
}

// Copy returns an Object owning a copy of *p.
func Copy[T any](p *T) *Object[T] {
	o := &Object[T]{}
	o.accessor = detail.ConstructCopyOf(&o.storage, p)
	return o
}

// Move returns an Object owning the contents of *p, which is left valid but
// unspecified.
func Move[T any](p *T) *Object[T] {
	o := &Object[T]{}
	o.accessor = detail.ConstructMoveOf(&o.storage, p)
	return o
}

// Ref returns an Object referring to *p. The Object does not own *p.
func Ref[T any](p *T) *Object[T] {
	o := &Object[T]{}
	o.accessor = detail.ConstructRef(&o.storage, p, false)
	return o
}

// ConstRef returns an Object referring to *p that refuses modification.
func ConstRef[T any](p *T) *Object[T] {
	o := &Object[T]{}
	o.accessor = detail.ConstructRef(&o.storage, p, true)
	return o
}

// RefAs is Ref for a pointer to a type D related to T.
func RefAs[T, D any](p *D) (*Object[T], error) {
	return refAs[T](p, false)
}

// ConstRefAs is ConstRef for a pointer to a type D related to T.
func ConstRefAs[T, D any](p *D) (*Object[T], error) {
	return refAs[T](p, true)
}

func refAs[T, D any](p *D, constant bool) (*Object[T], error) {
	if err := checkBound[T](detail.TypeInfoOf[D](), "reference"); err != nil {
		return nil, err
	}
	o := &Object[T]{}
	o.accessor = detail.ConstructRef(&o.storage, p, constant)
	return o, nil
}

// Void returns an Object holding no value.
func Void[T any]() *Object[T] {
	return &Object[T]{accessor: detail.VoidAccessor()}
}

// As returns an Object bounded by T holding a copy of the value of src.
func As[T any](src Reflected) (*Object[T], error) {
	return convertObject[T](src, "copy", func(a detail.Accessor, dst, s *detail.Storage) detail.Accessor {
		return a.ConstructCopy(dst, s)
	})
}

// AsMoved is As, moving from src where its value allows it.
func AsMoved[T any](src Reflected) (*Object[T], error) {
	return convertObject[T](src, "move", func(a detail.Accessor, dst, s *detail.Storage) detail.Accessor {
		return a.ConstructMove(dst, s)
	})
}

// RefTo returns an Object bounded by T referring to the value of src. A
// constant src cannot be referred to mutably.
func RefTo[T any](src Reflected) (*Object[T], error) {
	return convertObject[T](src, "reference", func(a detail.Accessor, dst, s *detail.Storage) detail.Accessor {
		return a.ConstructReference(dst, s, false)
	})
}

// ConstRefTo is RefTo for read-only access.
func ConstRefTo[T any](src Reflected) (*Object[T], error) {
	return convertObject[T](src, "reference", func(a detail.Accessor, dst, s *detail.Storage) detail.Accessor {
		return a.ConstructReference(dst, s, true)
	})
}

func convertObject[T any](src Reflected, op string, construct func(a detail.Accessor, dst, s *detail.Storage) detail.Accessor) (*Object[T], error) {
	a, s := src.erased()
	if err := checkBound[T](a.TypeInfo(), op); err != nil {
		return nil, err
	}
	o := &Object[T]{}
	o.accessor = construct(a, &o.storage, s)
	if o.accessor != nil {
		return o, nil
	}
	if op == "reference" {
		return nil, types.NewTypeError(op, detail.Describe(a), "", types.ErrConstantValue)
	}
	return nil, types.NewTypeError(op, detail.Describe(a), "", types.ErrPropertyAccess)
}

// checkBound reports ErrUnrelatedType unless info is admitted by the bound T.
func checkBound[T any](info *detail.TypeInfo, op string) error {
	if info == detail.VoidTypeInfo() {
		return nil
	}
	bound := reflect.TypeFor[T]()
	if bound.Kind() == reflect.Interface {
		rt := info.GoType()
		if rt.Implements(bound) || reflect.PointerTo(rt).Implements(bound) {
			return nil
		}
	} else if info.DerivesFrom(detail.TypeInfoOf[T]()) {
		return nil
	}
	return types.NewTypeError(op, info.Name(), detail.TypeInfoOf[T]().Name(), types.ErrUnrelatedType)
}

// Clone returns an Object holding a copy of the value of o.
func (o *Object[T]) Clone() (*Object[T], error) {
	return As[T](o)
}

// Moved returns an Object holding the value of o, moved where possible.
func (o *Object[T]) Moved() (*Object[T], error) {
	return AsMoved[T](o)
}

// Reference returns a mutable reference to the value of o.
func (o *Object[T]) Reference() (*Object[T], error) {
	return RefTo[T](o)
}

// ConstReference returns a read-only reference to the value of o.
func (o *Object[T]) ConstReference() (*Object[T], error) {
	return ConstRefTo[T](o)
}

// Type returns the dynamic type of the value, with its qualifiers.
func (o *Object[T]) Type() Type {
	return typeOfAccessor(o.accessor)
}

// Empty reports whether o holds no value.
func (o *Object[T]) Empty() bool {
	return o.accessor.TypeInfo() == detail.VoidTypeInfo()
}

// Close destructs the value of o, leaving it empty. Closing an empty Object
// does nothing.
func (o *Object[T]) Close() {
	if o.Empty() {
		return
	}
	o.accessor.Destruct(&o.storage)
	o.accessor = detail.VoidAccessor()
}

// Assign copy-assigns the value of src to the value of o. src is moved from
// only when it is a temporary, such as the result of a by-value getter.
func (o *Object[T]) Assign(src Reflected) error {
	a, s := src.erased()
	if o.Empty() {
		return types.NewTypeError("set", "void", detail.Describe(a), types.ErrVoidObject)
	}
	return detail.SetAsFrom(o.accessor, &o.storage, a, s)
}

// AssignMove assigns the value of src to the value of o, moving from it
// unless it is constant.
func (o *Object[T]) AssignMove(src Reflected) error {
	a, s := src.erased()
	if o.Empty() {
		return types.NewTypeError("move", "void", detail.Describe(a), types.ErrVoidObject)
	}
	return detail.MoveAsFrom(o.accessor, &o.storage, a, s)
}

// Property returns the property name of the value of o. A property of a
// referenced or owned value refers to the slot in place; a property of a
// temporary, such as the result of a by-value getter, holds a copy. Writes
// to that copy, or to its own properties, succeed but never reach the
// original owner.
func (o *Object[T]) Property(name string) (*Object[any], error) {
	p := &Object[any]{}
	a, err := detail.GetProperty(o.accessor, &o.storage, &p.storage, name)
	if err != nil {
		return nil, err
	}
	p.accessor = a
	return p, nil
}

// NewByName returns an Object holding the default value produced by the
// factory registered for the type named name.
func NewByName(name string) (*Object[any], error) {
	info, ok := detail.Lookup(name)
	if !ok {
		return nil, types.NewTypeError("construct", name, "", types.ErrTypeNotFound)
	}
	factory := info.Factory()
	if factory == nil {
		return nil, types.NewTypeError("construct", info.Name(), "", types.ErrNoFactory)
	}
	o := &Object[any]{}
	o.accessor = factory(&o.storage)
	return o, nil
}

// Get returns a copy of the value of o read as R.
func Get[R any](o Reflected) (R, error) {
	var zero R
	a, s := o.erased()
	if err := checkVoid[R](a, "get"); err != nil {
		return zero, err
	}
	buf := detail.NewBuffer[R]()
	p, err := detail.GetAsConst(a, s, detail.TypeInfoOf[R](), buf)
	if err != nil {
		return zero, err
	}
	if buf.Constructed() && p == buf.Value() {
		return *detail.BufferValue[R](buf), nil
	}
	return detail.CopyOf((*R)(p)), nil
}

// Value returns a copy of the value of o boxed with its dynamic Go type.
func Value(o Reflected) (any, error) {
	a, s := o.erased()
	if err := checkVoid[any](a, "get"); err != nil {
		return nil, err
	}
	info := a.TypeInfo()
	p, err := detail.GetAsConst(a, s, info, detail.NewBufferOf(info))
	if err != nil {
		return nil, err
	}
	return reflect.NewAt(info.GoType(), p).Elem().Interface(), nil
}

// GetRef returns the address of the value of o read as R, for modification.
func GetRef[R any](o Reflected) (*R, error) {
	a, s := o.erased()
	if err := checkVoid[R](a, "get"); err != nil {
		return nil, err
	}
	p, err := detail.GetAs(a, s, detail.TypeInfoOf[R](), nil)
	if err != nil {
		return nil, err
	}
	return (*R)(p), nil
}

// GetConst returns the address of the value of o read as R. The caller must
// not modify it. Values reached through a conversion or a by-value getter
// are returned as fresh copies.
func GetConst[R any](o Reflected) (*R, error) {
	a, s := o.erased()
	if err := checkVoid[R](a, "get"); err != nil {
		return nil, err
	}
	p, err := detail.GetAsConst(a, s, detail.TypeInfoOf[R](), detail.NewBuffer[R]())
	if err != nil {
		return nil, err
	}
	return (*R)(p), nil
}

// Set assigns v to the value of o. v is consumed.
func Set[V any](o Reflected, v V) error {
	return SetMove(o, &v)
}

// SetCopy copy-assigns *p to the value of o.
func SetCopy[V any](o Reflected, p *V) error {
	a, s := o.erased()
	if err := checkVoid[V](a, "set"); err != nil {
		return err
	}
	return detail.SetAs(a, s, detail.TypeInfoOf[V](), unsafe.Pointer(p))
}

// SetMove move-assigns *p to the value of o.
func SetMove[V any](o Reflected, p *V) error {
	a, s := o.erased()
	if err := checkVoid[V](a, "move"); err != nil {
		return err
	}
	return detail.MoveAs(a, s, detail.TypeInfoOf[V](), unsafe.Pointer(p))
}

func checkVoid[V any](a detail.Accessor, op string) error {
	if a.TypeInfo() != detail.VoidTypeInfo() {
		return nil
	}
	return types.NewTypeError(op, "void", detail.TypeInfoOf[V]().Name(), types.ErrVoidObject)
}
