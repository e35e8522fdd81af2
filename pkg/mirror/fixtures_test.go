package mirror_test

import (
	"strconv"
	"sync"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
)

type tally struct {
	baseValues, baseCopies, baseMoves, baseDestroys int
	derivedValues, derivedCopies, derivedDestroys   int
}

var counted tally

func reset() { counted = tally{} }

type Base struct {
	i int
}

// NewBase value-constructs a Base.
func NewBase(i int) Base {
	counted.baseValues++
	return Base{i: i}
}

func (b *Base) Int() int { return b.i }

func (b Base) String() string { return "Base(" + strconv.Itoa(b.i) + ")" }

func (b *Base) Copy() Base {
	counted.baseCopies++
	return *b
}

func (b *Base) Move() Base {
	counted.baseMoves++
	v := *b
	b.i = 0
	return v
}

func (b *Base) Destroy() { counted.baseDestroys++ }

type Derived struct {
	Base
	j int
}

func NewDerived(i, j int) Derived {
	counted.derivedValues++
	return Derived{Base: Base{i: i}, j: j}
}

func (d *Derived) Copy() Derived {
	counted.derivedCopies++
	return Derived{Base: d.Base.Copy(), j: d.j}
}

func (d *Derived) Destroy() {
	counted.derivedDestroys++
	d.Base.Destroy()
}

type Unrelated struct {
	s string
}

// Pair exposes a Base only by value.
type Pair struct {
	first Base
	tag   string
}

var registerTestTypes = sync.OnceFunc(func() {
	must(mirror.Register[Base]("Base").
		Conversion(mirror.ConvertFunc(Base.String)).
		Property(
			mirror.Prop("i", mirror.Field(func(b *Base) *int { return &b.i })),
			mirror.Prop("twice", mirror.Getter(func(b *Base) int { return b.i * 2 })),
		).
		Factory(func() Base { return Base{i: -1} }).
		Err())

	must(mirror.Register[Derived]("Derived").
		Base(mirror.Embedded[Derived, Base]()).
		Property(mirror.Prop("j", mirror.Field(func(d *Derived) *int { return &d.j }))).
		Err())

	must(mirror.Register[Pair]("Pair").
		Property(
			mirror.Prop("first", mirror.Getter(func(p *Pair) Base { return p.first })),
			mirror.Prop("tag",
				mirror.ConstRefGetter(func(p *Pair) *string { return &p.tag }),
				mirror.Setter(func(p *Pair, v string) { p.tag = v }),
			),
		).
		Err())
})

func must(err error) {
	if err != nil {
		panic(err)
	}
}
