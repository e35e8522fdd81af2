// Package gen emits Go source that registers struct types with mirror.
// Implements: registration code generation for exported struct fields and
// embedded structs (mirror gen, mage generate).
package gen

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"reflect"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

const mirrorPath = "github.com/mesh-intelligence/mirror/pkg/mirror"

// Generator errors.
var (
	ErrNotStruct       = errors.New("type is not a struct")
	ErrUnsupportedType = errors.New("type cannot be named in generated code")
	ErrNoTypes         = errors.New("no types to generate")
)

// Options controls the generated file.
type Options struct {
	// PackagePath and PackageName give the package the file belongs to.
	// Types declared in PackagePath are referenced without a qualifier.
	PackagePath string
	PackageName string

	// Export names the generated functions RegisterX instead of registerX.
	Export bool
}

// File builds a file holding one registration function per type. Each
// function registers the type under its Go name, an Embedded base for every
// embedded struct, and a Field property for every exported field.
func File(opts Options, ts ...reflect.Type) (*jen.File, error) {
	if len(ts) == 0 {
		return nil, ErrNoTypes
	}

	f := jen.NewFilePathName(opts.PackagePath, opts.PackageName)
	f.HeaderComment("Code generated by mirror gen. DO NOT EDIT.")
	f.ImportName(mirrorPath, "mirror")

	for _, t := range ts {
		if err := registration(f, opts, t); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Render writes the file built by File to w.
func Render(w io.Writer, opts Options, ts ...reflect.Type) error {
	f, err := File(opts, ts...)
	if err != nil {
		return err
	}
	return f.Render(w)
}

func registration(f *jen.File, opts Options, t reflect.Type) error {
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%s: %w", t, ErrNotStruct)
	}
	self, err := typeCode(opts, t)
	if err != nil {
		return err
	}

	var bases, props []jen.Code
	var skipped []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		ft, err := typeCode(opts, field.Type)
		if err != nil {
			skipped = append(skipped, field.Name)
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			bases = append(bases, jen.Qual(mirrorPath, "Embedded").Types(self, ft).Call())
			continue
		}
		props = append(props, jen.Qual(mirrorPath, "Prop").Call(
			jen.Lit(propertyName(field.Name)),
			jen.Qual(mirrorPath, "Field").Call(
				jen.Func().Params(jen.Id("v").Op("*").Add(self)).Op("*").Add(ft).Block(
					jen.Return(jen.Op("&").Id("v").Dot(field.Name)),
				),
			),
		))
	}

	call := jen.Qual(mirrorPath, "Register").Types(self).Call(jen.Lit(t.Name()))
	multi := jen.Options{Open: "(", Close: ")", Separator: ",", Multi: true}
	if len(bases) > 0 {
		call.Op(".").Line().Id("Base").Custom(multi, bases...)
	}
	if len(props) > 0 {
		call.Op(".").Line().Id("Property").Custom(multi, props...)
	}
	call.Op(".").Line().Id("Err").Call()

	name := "register" + t.Name()
	if opts.Export {
		name = "Register" + t.Name()
	}

	f.Commentf("%s registers %s and its exported fields.", name, t.Name())
	for _, s := range skipped {
		f.Commentf("Field %s is skipped: its type cannot be named here.", s)
	}
	f.Func().Id(name).Params().Error().Block(jen.Return(call))
	return nil
}

// typeCode returns the source form of t as seen from the generated package.
func typeCode(opts Options, t reflect.Type) (jen.Code, error) {
	if name := t.Name(); name != "" {
		switch {
		case strings.ContainsRune(name, '['):
		case t.PkgPath() == "":
			return jen.Id(name), nil
		case t.PkgPath() == opts.PackagePath:
			return jen.Id(name), nil
		case token.IsExported(name):
			return jen.Qual(t.PkgPath(), name), nil
		}
		return nil, fmt.Errorf("%s: %w", t, ErrUnsupportedType)
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		elem, err := typeCode(opts, t.Elem())
		if err != nil {
			return nil, err
		}
		switch t.Kind() {
		case reflect.Pointer:
			return jen.Op("*").Add(elem), nil
		case reflect.Slice:
			return jen.Index().Add(elem), nil
		default:
			return jen.Index(jen.Lit(t.Len())).Add(elem), nil
		}
	case reflect.Map:
		key, err := typeCode(opts, t.Key())
		if err != nil {
			return nil, err
		}
		elem, err := typeCode(opts, t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(elem), nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return jen.Id("any"), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", t, ErrUnsupportedType)
}

// propertyName lower-cases the leading run of upper-case letters of a field
// name: X becomes x, Theta becomes theta, ID becomes id and URLPath becomes
// urlPath.
func propertyName(field string) string {
	runes := []rune(field)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
