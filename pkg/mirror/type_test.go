package mirror_test

import (
	"bytes"
	"log/slog"
	"reflect"
	"testing"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
	"github.com/mesh-intelligence/mirror/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	registerTestTypes()

	tests := []struct {
		name string
		typ  mirror.Type
		want string
	}{
		{name: "value", typ: mirror.TypeOf[Base](), want: "Base"},
		{name: "const", typ: mirror.ConstTypeOf[Base](), want: "Base const"},
		{name: "ref", typ: mirror.RefTypeOf[Base](), want: "Base &"},
		{name: "const ref", typ: mirror.ConstRefTypeOf[Base](), want: "Base const &"},
		{name: "unnamed", typ: mirror.TypeOf[Unrelated](), want: "mirror_test.Unrelated"},
		{name: "void", typ: mirror.VoidType(), want: "void"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeOrdering(t *testing.T) {
	registerTestTypes()

	base, derived := mirror.TypeOf[Base](), mirror.TypeOf[Derived]()

	assert.True(t, base.Less(derived))
	assert.False(t, derived.Less(base))
	assert.Equal(t, 0, base.Compare(mirror.TypeOf[Base]()))
	assert.True(t, base.Less(mirror.ConstTypeOf[Base]()))
	assert.True(t, mirror.ConstTypeOf[Base]().Less(mirror.ConstRefTypeOf[Base]()))
	assert.True(t, mirror.VoidType().Less(base))

	assert.True(t, base.Equal(mirror.TypeOf[Base]()))
	assert.False(t, base.Equal(mirror.RefTypeOf[Base]()))
	assert.Equal(t, base, mirror.RefTypeOf[Base]().Unqualified())
}

func TestTypeQueries(t *testing.T) {
	registerTestTypes()

	typ, ok := mirror.LookupType("Derived")
	require.True(t, ok)
	assert.Equal(t, mirror.TypeOf[Derived](), typ)
	assert.Equal(t, reflect.TypeFor[Derived](), typ.GoType())
	assert.True(t, typ.DerivesFrom(mirror.TypeOf[Base]()))
	assert.False(t, mirror.TypeOf[Base]().DerivesFrom(typ))

	_, ok = mirror.LookupType("Missing")
	assert.False(t, ok)

	all := mirror.Types()
	assert.Contains(t, all, mirror.TypeOf[Base]())
	assert.Contains(t, all, mirror.TypeOf[Pair]())
	assert.NotContains(t, all, mirror.TypeOf[Unrelated]())
}

func TestRegistrationErrors(t *testing.T) {
	registerTestTypes()

	type other struct{ n int }

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "name taken",
			err:     mirror.Register[other]("Base").Err(),
			wantErr: types.ErrNameTaken,
		},
		{
			name:    "not embedded",
			err:     mirror.Register[other]().Base(mirror.Embedded[other, Base]()).Err(),
			wantErr: types.ErrUnrelatedType,
		},
		{
			name:    "cycle",
			err:     mirror.Register[Base]().Base(mirror.Upcast(func(*Base) *Derived { return nil })).Err(),
			wantErr: types.ErrCyclicBase,
		},
		{
			name:    "not convertible",
			err:     mirror.Register[other]().Conversion(mirror.Cast[other, string]()).Err(),
			wantErr: types.ErrNotConvertible,
		},
		{
			name:    "duplicate property",
			err:     mirror.Register[Base]().Property(mirror.Prop("i", mirror.Field(func(b *Base) *int { return &b.i }))).Err(),
			wantErr: types.ErrDuplicateProperty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.wantErr)
		})
	}
}

func TestCastConversion(t *testing.T) {
	type celsius float64
	type kelvin float64

	require.NoError(t, mirror.Register[celsius]("celsius").
		Conversion(mirror.Cast[celsius, float64]()).
		Conversion(mirror.Convert(func(c *celsius) kelvin { return kelvin(*c + 273.15) })).
		Err())

	o := mirror.Of(celsius(10))
	f, err := mirror.Get[float64](o)
	require.NoError(t, err)
	assert.Equal(t, 10.0, f)

	k, err := mirror.Get[kelvin](o)
	require.NoError(t, err)
	assert.InDelta(t, 283.15, float64(k), 1e-9)
}

func TestExplainer(t *testing.T) {
	registerTestTypes()

	e, err := mirror.NewExplainer(0)
	require.NoError(t, err)

	hops, ok := e.Explain(mirror.TypeOf[Derived](), mirror.ConstRefTypeOf[string]())
	require.True(t, ok)
	assert.Equal(t, []mirror.Hop{
		{Kind: "base", From: "Derived", To: "Base"},
		{Kind: "conversion", From: "Base", To: "string"},
	}, hops)
	assert.Equal(t, 1, e.Cached())

	_, ok = e.Explain(mirror.TypeOf[Base](), mirror.TypeOf[Derived]())
	assert.False(t, ok)
	assert.Equal(t, 2, e.Cached())
}

func TestDescribe(t *testing.T) {
	registerTestTypes()

	var base *types.TypeRecord
	records := mirror.Describe()
	for i := range records {
		if records[i].Name == "Base" {
			base = &records[i]
		}
	}
	require.NotNil(t, base)
	assert.True(t, base.Factory)
	assert.Equal(t, []string{"string"}, base.Conversions)
	assert.Equal(t, []types.PropertyRecord{
		{Name: "i", Type: "int", Readable: true, Writable: true},
		{Name: "twice", Type: "int", Readable: true},
	}, base.Properties)
}

func TestSetLogger(t *testing.T) {
	type logged struct{}

	var buf bytes.Buffer
	mirror.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { mirror.SetLogger(nil) })

	require.NoError(t, mirror.Register[logged]("mirror-logged").Err())
	assert.Contains(t, buf.String(), `"msg":"registered name"`)
	assert.Contains(t, buf.String(), `"name":"mirror-logged"`)
}
