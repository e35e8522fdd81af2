package mirror

import (
	"errors"

	"github.com/mesh-intelligence/mirror/internal/detail"
)

// Registration declares names, bases, conversions, properties and a factory
// for T. Every method appends to the process-wide description of T and
// returns the receiver; errors are collected and reported by Err.
//
//	err := mirror.Register[Point3D]("Point3D").
//		Base(mirror.Embedded[Point3D, Point]()).
//		Property(mirror.Prop("z", mirror.Field(func(p *Point3D) *float64 { return &p.Z }))).
//		Err()
type Registration[T any] struct {
	info *detail.TypeInfo
	errs []error
}

// Register starts a registration for T under the given names. The first
// name becomes the display name of T; the others are aliases.
func Register[T any](names ...string) *Registration[T] {
	r := &Registration[T]{info: detail.TypeInfoOf[T]()}
	for _, name := range names {
		r.record(r.info.RegisterName(name))
	}
	return r
}

func (r *Registration[T]) record(err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

// Base registers base edges of T.
func (r *Registration[T]) Base(specs ...BaseSpec[T]) *Registration[T] {
	for _, s := range specs {
		if s.err != nil {
			r.record(s.err)
			continue
		}
		r.record(r.info.RegisterBase(s.base))
	}
	return r
}

// Conversion registers conversion edges from T. Only the first conversion
// to a given target is kept.
func (r *Registration[T]) Conversion(specs ...ConversionSpec[T]) *Registration[T] {
	for _, s := range specs {
		if s.err != nil {
			r.record(s.err)
			continue
		}
		r.info.RegisterConversion(s.conversion)
	}
	return r
}

// Property registers properties of T.
func (r *Registration[T]) Property(specs ...PropertySpec[T]) *Registration[T] {
	for _, s := range specs {
		r.record(r.info.RegisterProperty(s.property))
	}
	return r
}

// Factory registers the function producing a default T for NewByName.
func (r *Registration[T]) Factory(f func() T) *Registration[T] {
	r.info.RegisterFactory(detail.NewFactory(f))
	return r
}

// Err returns every error raised by the registration so far.
func (r *Registration[T]) Err() error {
	return errors.Join(r.errs...)
}

// Type returns the registered type.
func (r *Registration[T]) Type() Type {
	return Type{info: r.info}
}

// BaseSpec describes a base edge of T.
type BaseSpec[T any] struct {
	base detail.Base
	err  error
}

// Upcast declares B a base of T reached through upcast.
func Upcast[T, B any](upcast func(*T) *B) BaseSpec[T] {
	return BaseSpec[T]{base: detail.NewBase(upcast)}
}

// Embedded declares the struct B embedded in T a base of T.
func Embedded[T, B any]() BaseSpec[T] {
	b, err := detail.EmbeddedBase[T, B]()
	return BaseSpec[T]{base: b, err: err}
}

// ConversionSpec describes a conversion edge from T.
type ConversionSpec[T any] struct {
	conversion detail.Conversion
	err        error
}

// Convert declares a conversion from T to U computed by convert. A method
// expression such as (*Celsius).Kelvin fits directly.
func Convert[T, U any](convert func(*T) U) ConversionSpec[T] {
	return ConversionSpec[T]{conversion: detail.NewConversion(convert)}
}

// ConvertFunc declares a conversion from T to U taking the source by value,
// as a plain function or a value-receiver method expression does.
func ConvertFunc[T, U any](convert func(T) U) ConversionSpec[T] {
	return Convert(func(v *T) U { return convert(*v) })
}

// ConvertConsume is Convert with a separate function used when the source
// may be consumed.
func ConvertConsume[T, U any](convert, consume func(*T) U) ConversionSpec[T] {
	return ConversionSpec[T]{conversion: detail.NewConsumingConversion(convert, consume)}
}

// Cast declares the conversion from T to U that Go itself allows, such as
// between numeric types or named types sharing an underlying type.
func Cast[T, U any]() ConversionSpec[T] {
	c, err := detail.NewCast[T, U]()
	return ConversionSpec[T]{conversion: c, err: err}
}

// PropertySpec describes a property of T.
type PropertySpec[T any] struct {
	property *detail.Property
}

// Part is one way of reading or writing a property of type V on T.
type Part[T, V any] = detail.PropertyPart[T, V]

// Prop declares the property name of type V on T made of parts. Reads use
// the first part able to read, writes the first part able to write.
func Prop[T, V any](name string, parts ...Part[T, V]) PropertySpec[T] {
	return PropertySpec[T]{property: detail.NewProperty(name, parts...)}
}

// Field exposes a member, writable through mutable owners.
func Field[T, V any](member func(*T) *V) Part[T, V] {
	return detail.FieldPart(member)
}

// ConstField exposes a member that the property never writes.
func ConstField[T, V any](member func(*T) *V) Part[T, V] {
	return detail.ConstFieldPart(member)
}

// Getter reads the property by value. The result is a temporary: it can be
// read or copied but not referred to mutably.
func Getter[T, V any](get func(*T) V) Part[T, V] {
	return detail.GetterPart(get)
}

// RefGetter reads and writes through the returned pointer, on mutable owners
// only.
func RefGetter[T, V any](get func(*T) *V) Part[T, V] {
	return detail.RefGetterPart(get)
}

// ConstRefGetter reads through the returned pointer without writing to it.
func ConstRefGetter[T, V any](get func(*T) *V) Part[T, V] {
	return detail.ConstRefGetterPart(get)
}

// Setter writes the property by value.
func Setter[T, V any](set func(*T, V)) Part[T, V] {
	return detail.SetterPart(set)
}

// PtrSetter writes the property by pointer. On a move the pointer is the
// source itself and set may take its contents.
func PtrSetter[T, V any](set func(*T, *V)) Part[T, V] {
	return detail.PtrSetterPart(set)
}
