package mirror_test

import (
	"testing"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
	"github.com/mesh-intelligence/mirror/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyMutationIsolation(t *testing.T) {
	registerTestTypes()

	d := Derived{Base: Base{i: 1}, j: 2}
	o := mirror.Ref(&d)

	i, err := o.Property("i")
	require.NoError(t, err)
	assert.Equal(t, "int &", i.Type().String())

	require.NoError(t, mirror.Set(i, 10))
	assert.Equal(t, 10, d.i)
	assert.Equal(t, 2, d.j)

	got, err := mirror.Get[int](i)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	twice, err := o.Property("twice")
	require.NoError(t, err)
	assert.ErrorIs(t, mirror.Set(twice, 99), types.ErrConstantValue)
	assert.Equal(t, 10, d.i)

	got, err = mirror.Get[int](twice)
	require.NoError(t, err)
	assert.Equal(t, 20, got)
}

func TestPropertyOfConstantOwner(t *testing.T) {
	registerTestTypes()

	b := Base{i: 5}
	o := mirror.ConstRef(&b)

	i, err := o.Property("i")
	require.NoError(t, err)
	assert.Equal(t, "int const &", i.Type().String())
	assert.ErrorIs(t, mirror.Set(i, 6), types.ErrConstantValue)
	assert.Equal(t, 5, b.i)

	p, err := mirror.GetConst[int](i)
	require.NoError(t, err)
	assert.Same(t, &b.i, p)
}

func TestSetterProperty(t *testing.T) {
	registerTestTypes()

	p := Pair{tag: "a"}
	o := mirror.Ref(&p)

	tag, err := o.Property("tag")
	require.NoError(t, err)
	require.NoError(t, mirror.Set(tag, "b"))
	assert.Equal(t, "b", p.tag)

	got, err := mirror.Get[string](tag)
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	_, err = mirror.GetRef[string](tag)
	assert.ErrorIs(t, err, types.ErrConstantValue)
}

func TestNestedProperty(t *testing.T) {
	registerTestTypes()
	reset()

	p := Pair{first: Base{i: 3}}
	o := mirror.Ref(&p)

	first, err := o.Property("first")
	require.NoError(t, err)
	assert.Equal(t, "Base const &", first.Type().String())

	i, err := first.Property("i")
	require.NoError(t, err)
	assert.Equal(t, "int", i.Type().String())

	require.NoError(t, mirror.Set(i, 30))
	got, err := mirror.Get[int](i)
	require.NoError(t, err)
	assert.Equal(t, 30, got)
	assert.Equal(t, 3, p.first.i)

	s, err := mirror.Get[string](first)
	require.NoError(t, err)
	assert.Equal(t, "Base(3)", s)

	b, err := mirror.Get[Base](first)
	require.NoError(t, err)
	assert.Equal(t, 3, b.i)
	assert.Equal(t, 1, counted.baseMoves)
	assert.Zero(t, counted.baseCopies)
}

func TestPropertyThroughCopy(t *testing.T) {
	registerTestTypes()

	d := Derived{Base: Base{i: 1}, j: 2}
	o := mirror.Ref(&d)
	j, err := o.Property("j")
	require.NoError(t, err)

	c, err := mirror.As[any](j)
	require.NoError(t, err)
	require.NoError(t, mirror.Set(c, 7))
	assert.Equal(t, 2, d.j)

	r, err := mirror.RefTo[any](j)
	require.NoError(t, err)
	require.NoError(t, mirror.Set(r, 8))
	assert.Equal(t, 8, d.j)
}

func TestPropertyErrors(t *testing.T) {
	registerTestTypes()

	o := mirror.New(Base{})
	_, err := o.Property("missing")
	assert.ErrorIs(t, err, types.ErrPropertyNotFound)
	assert.EqualError(t, err, "property 'missing' of type 'Base': property not registered")
}

func TestAssignFromTemporaryProperty(t *testing.T) {
	registerTestTypes()
	reset()

	p := Pair{first: Base{i: 4}}
	first, err := mirror.Ref(&p).Property("first")
	require.NoError(t, err)

	var b Base
	require.NoError(t, mirror.Ref(&b).Assign(first))
	assert.Equal(t, 4, b.i)
	assert.Equal(t, 1, counted.baseMoves)
	assert.Equal(t, 4, p.first.i)
}
