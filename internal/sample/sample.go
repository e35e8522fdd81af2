// Package sample registers a small set of geometry types used by the mirror
// command and by examples.
// Implements: demonstration registrations covering bases, conversion
// functions, Go conversions, fields, getters, ref getters, setters and nested
// by-value getters.
package sample

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Polar returns p in polar coordinates.
func (p Point) Polar() Polar {
	return Polar{R: math.Hypot(p.X, p.Y), Theta: math.Atan2(p.Y, p.X)}
}

// Point3D extends Point with a depth.
type Point3D struct {
	Point
	Z float64
}

// Polar is a position given by distance and angle from the origin.
type Polar struct {
	R, Theta float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// Celsius is a temperature in degrees Celsius.
type Celsius float64

// Fahrenheit is a temperature in degrees Fahrenheit.
type Fahrenheit float64

// Fahrenheit converts c.
func (c Celsius) Fahrenheit() Fahrenheit { return Fahrenheit(c*9/5 + 32) }

// Celsius converts f.
func (f Fahrenheit) Celsius() Celsius { return Celsius((f - 32) * 5 / 9) }

var lastShapeID atomic.Int64

// Shape is a named rectangle anchored at its origin. Each Shape built by
// NewShape carries a process-unique id.
type Shape struct {
	name   string
	Origin Point
	id     int64
	width  float64
	height float64
}

// NewShape returns a width by height shape anchored at the origin.
func NewShape(name string, width, height float64) Shape {
	return Shape{name: name, id: lastShapeID.Add(1), width: width, height: height}
}

func (s *Shape) Name() *string       { return &s.name }
func (s *Shape) SetName(name string) { s.name = name }
func (s *Shape) ID() int64           { return s.id }
func (s *Shape) Anchor() *Point      { return &s.Origin }

// Area returns width times height.
func (s Shape) Area() float64 { return s.width * s.height }

// Bounds returns the rectangle covered by s.
func (s Shape) Bounds() Rect {
	return Rect{
		Min: s.Origin,
		Max: Point{X: s.Origin.X + s.width, Y: s.Origin.Y + s.height},
	}
}

var registerOnce = sync.OnceValue(register)

// Register registers the sample types with mirror. It is safe to call more
// than once; later calls return the result of the first.
func Register() error {
	return registerOnce()
}

func register() error {
	return errors.Join(
		registerPoint(),
		registerPoint3D(),
		registerPolar(),
		registerRect(),
		mirror.Register[Point]().
			Conversion(mirror.ConvertFunc(Point.Polar)).
			Factory(func() Point { return Point{} }).
			Err(),
		mirror.Register[Point3D]().
			Factory(func() Point3D { return Point3D{Point: Point{X: 1, Y: 2}, Z: 3} }).
			Err(),
		mirror.Register[Celsius]("Celsius").
			Conversion(
				mirror.Cast[Celsius, float64](),
				mirror.ConvertFunc(Celsius.Fahrenheit),
			).
			Factory(func() Celsius { return 20 }).
			Err(),
		mirror.Register[Fahrenheit]("Fahrenheit").
			Conversion(
				mirror.Cast[Fahrenheit, float64](),
				mirror.ConvertFunc(Fahrenheit.Celsius),
			).
			Err(),
		mirror.Register[Shape]("Shape").
			Property(
				mirror.Prop("name",
					mirror.ConstRefGetter((*Shape).Name),
					mirror.Setter((*Shape).SetName),
				),
				mirror.Prop("origin", mirror.Field(func(s *Shape) *Point { return &s.Origin })),
				mirror.Prop("id", mirror.ConstField(func(s *Shape) *int64 { return &s.id })),
				mirror.Prop("area", mirror.Getter((*Shape).Area)),
				mirror.Prop("anchor", mirror.RefGetter((*Shape).Anchor)),
				mirror.Prop("bounds", mirror.Getter((*Shape).Bounds)),
			).
			Factory(func() Shape { return NewShape("unit", 1, 1) }).
			Err(),
	)
}
