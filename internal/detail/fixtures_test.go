package detail

import (
	"strconv"
	"sync"
	"unsafe"
)

// counts records every lifecycle hook run on the fixture types.
type counts struct {
	parentCopies, parentMoves, parentCopyAssigns, parentMoveAssigns, parentDestroys int
	childCopies, childMoves, childDestroys                                          int
}

var tally counts

func resetTally() { tally = counts{} }

// parent is a counted value type with every lifecycle hook.
type parent struct {
	i int
}

func newParent() parent { return parent{i: -1} }

func (p *parent) Copy() parent {
	tally.parentCopies++
	return *p
}

func (p *parent) Move() parent {
	tally.parentMoves++
	v := *p
	p.i = -1
	return v
}

func (p *parent) CopyAssign(src *parent) {
	tally.parentCopyAssigns++
	p.i = src.i
}

func (p *parent) MoveAssign(src *parent) {
	tally.parentMoveAssigns++
	p.i = src.i
	src.i = -1
}

func (p *parent) Destroy() { tally.parentDestroys++ }

func (p *parent) double() int { return p.i * 2 }

// child derives from parent by embedding it.
type child struct {
	parent
	j int
}

func (c *child) Copy() child {
	tally.childCopies++
	return child{parent: c.parent.Copy(), j: c.j}
}

func (c *child) Move() child {
	tally.childMoves++
	return child{parent: c.parent.Move(), j: c.j}
}

func (c *child) Destroy() {
	tally.childDestroys++
	c.parent.Destroy()
}

// label is reachable from parent only through a conversion.
type label struct {
	text string
}

// unrelated has no edges to anything.
type unrelated struct {
	s string
}

// holder owns a child and exposes it by value, by reference and by field.
type holder struct {
	c     child
	name  string
	id    int
	notes []string
}

var registerFixtures = sync.OnceFunc(func() {
	must(TypeInfoOf[parent]().RegisterName("parent"))
	must(TypeInfoOf[child]().RegisterName("child"))
	must(TypeInfoOf[child]().RegisterBase(NewBase(func(c *child) *parent { return &c.parent })))
	TypeInfoOf[parent]().RegisterConversion(NewConversion(func(p *parent) label {
		return label{text: strconv.Itoa(p.i)}
	}))
	TypeInfoOf[parent]().RegisterFactory(NewFactory(newParent))

	must(TypeInfoOf[parent]().RegisterProperty(NewProperty("i", FieldPart(func(p *parent) *int { return &p.i }))))
	must(TypeInfoOf[parent]().RegisterProperty(NewProperty("double", GetterPart((*parent).double))))
	must(TypeInfoOf[parent]().RegisterProperty(NewProperty("fixed", ConstFieldPart(func(p *parent) *int { return &p.i }))))

	h := TypeInfoOf[holder]()
	must(h.RegisterName("holder"))
	must(h.RegisterProperty(NewProperty("child", GetterPart(func(h *holder) child { return h.c }))))
	must(h.RegisterProperty(NewProperty("ref", RefGetterPart(func(h *holder) *child { return &h.c }))))
	must(h.RegisterProperty(NewProperty("name",
		ConstRefGetterPart(func(h *holder) *string { return &h.name }),
		SetterPart(func(h *holder, v string) { h.name = v }),
	)))
	must(h.RegisterProperty(NewProperty("notes",
		GetterPart(func(h *holder) []string { return h.notes }),
		PtrSetterPart(func(h *holder, v *[]string) { h.notes = *v }),
	)))
	must(h.RegisterProperty(NewProperty("id", SetterPart(func(h *holder, v int) { h.id = v }))))
})

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func ptrOf[T any](p *T) unsafe.Pointer {
	return unsafe.Pointer(p)
}
