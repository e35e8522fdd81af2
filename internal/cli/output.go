// Shared output and lookup helpers for mirror CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
)

// builtinTypes names predeclared types usable as conversion targets without
// registration.
var builtinTypes = map[string]mirror.Type{
	"bool":    mirror.TypeOf[bool](),
	"int":     mirror.TypeOf[int](),
	"int64":   mirror.TypeOf[int64](),
	"float64": mirror.TypeOf[float64](),
	"string":  mirror.TypeOf[string](),
}

// lookupType resolves a registered name or a predeclared type name.
func lookupType(name string) (mirror.Type, error) {
	if t, ok := mirror.LookupType(name); ok {
		return t, nil
	}
	if t, ok := builtinTypes[name]; ok {
		return t, nil
	}
	return mirror.Type{}, userError("unknown type %q (see 'mirror types')", name)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError("marshal JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return sysError("marshal YAML: %w", err)
	}
	return enc.Close()
}

// table writes tab-aligned rows under a header.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	t.row(header...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

// orNone renders an empty list as "-".
func orNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
