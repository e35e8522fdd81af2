package gen

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mirror/internal/sample"
)

type vertex struct {
	X, Y   float64
	Labels []string
	Attrs  map[string]any
	Next   *vertex
	weight int
}

type tagged struct {
	vertex
	sample.Point
	ID    string
	Apply func()
}

func render(t *testing.T, opts Options, ts ...reflect.Type) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, opts, ts...))
	return buf.String()
}

func TestRenderLocalStruct(t *testing.T) {
	out := render(t, Options{
		PackagePath: "github.com/mesh-intelligence/mirror/internal/gen",
		PackageName: "gen",
	}, reflect.TypeFor[vertex]())

	wants := []string{
		"// Code generated by mirror gen. DO NOT EDIT.",
		"package gen",
		`"github.com/mesh-intelligence/mirror/pkg/mirror"`,
		"// registervertex registers vertex and its exported fields.",
		"func registervertex() error {",
		`mirror.Register[vertex]("vertex")`,
		`mirror.Prop("x", mirror.Field(func(v *vertex) *float64 {`,
		"return &v.X",
		`mirror.Prop("labels", mirror.Field(func(v *vertex) *[]string {`,
		`mirror.Prop("attrs", mirror.Field(func(v *vertex) *map[string]any {`,
		`mirror.Prop("next", mirror.Field(func(v *vertex) **vertex {`,
		"Err()",
	}
	for _, want := range wants {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "weight")
}

func TestRenderForeignPackage(t *testing.T) {
	out := render(t, Options{
		PackagePath: "example.com/app/registry",
		PackageName: "registry",
		Export:      true,
	}, reflect.TypeFor[sample.Point3D](), reflect.TypeFor[sample.Rect]())

	wants := []string{
		"package registry",
		`"github.com/mesh-intelligence/mirror/internal/sample"`,
		"func RegisterPoint3D() error {",
		`mirror.Register[sample.Point3D]("Point3D")`,
		"mirror.Embedded[sample.Point3D, sample.Point]()",
		`mirror.Prop("z", mirror.Field(func(v *sample.Point3D) *float64 {`,
		"func RegisterRect() error {",
		`mirror.Prop("min", mirror.Field(func(v *sample.Rect) *sample.Point {`,
	}
	for _, want := range wants {
		assert.Contains(t, out, want)
	}
}

func TestRenderEmbeddedAndSkipped(t *testing.T) {
	out := render(t, Options{
		PackagePath: "github.com/mesh-intelligence/mirror/internal/gen",
		PackageName: "gen",
	}, reflect.TypeFor[tagged]())

	assert.Contains(t, out, "mirror.Embedded[tagged, sample.Point]()")
	assert.Contains(t, out, `mirror.Prop("id", mirror.Field(func(v *tagged) *string {`)
	assert.Contains(t, out, "// Field Apply is skipped: its type cannot be named here.")
	assert.NotContains(t, out, "Embedded[tagged, vertex]")
}

func TestFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		types   []reflect.Type
		wantErr error
	}{
		{name: "no types", wantErr: ErrNoTypes},
		{name: "not a struct", types: []reflect.Type{reflect.TypeFor[sample.Celsius]()}, wantErr: ErrNotStruct},
		{name: "unexported foreign type", types: []reflect.Type{reflect.TypeFor[vertex]()}, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := File(Options{PackagePath: "example.com/other", PackageName: "other"}, tt.types...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{field: "X", want: "x"},
		{field: "Theta", want: "theta"},
		{field: "ID", want: "id"},
		{field: "URLPath", want: "urlPath"},
		{field: "already", want: "already"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, propertyName(tt.field))
		})
	}
}
