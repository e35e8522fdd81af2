// Package mirror provides type-erased values with runtime type relations.
//
// An Object holds one value, owned or referenced, mutable or constant, behind
// a static bound. Registered base and conversion edges let the value be read
// as related types; registered properties expose named slots of it as further
// Objects.
//
//	mirror.Register[Point]("Point").
//		Property(mirror.Prop("x", mirror.Field(func(p *Point) *float64 { return &p.X })))
//
//	o := mirror.Of(Point{X: 1})
//	x, _ := o.Property("x")
//	v, _ := mirror.Get[float64](x)
//
// Implements: Object façade over the type-erasure engine (Storage, Accessor,
// TypeInfo); Register DSL for names, bases, conversions, properties and
// factories; Type diagnostics.
package mirror
