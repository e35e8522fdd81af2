package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

// dumper prints values for mirror get. Pointers are followed but their
// addresses are hidden so output is stable.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newGetCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> [property.path]",
		Short: "Build a type's default value and print it or one of its properties",
		Long: "get builds the value produced by the factory registered for <type>,\n" +
			"follows the dot-separated property path, and dumps the result.",
		Example: "  mirror get Shape\n  mirror get Shape bounds.max.x",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := mirror.NewByName(args[0])
			if err != nil {
				return userError("%w", err)
			}
			defer o.Close()

			var path []string
			if len(args) == 2 {
				path = strings.Split(args[1], ".")
			}
			result, err := walk(o, path)
			if err != nil {
				return err
			}

			v, err := mirror.Value(result)
			if err != nil {
				return userError("read %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if f.jsonMode {
				return writeJSON(out, map[string]any{"type": result.Type().String(), "value": v})
			}
			fmt.Fprintf(out, "(%s) ", result.Type())
			dumper.Fdump(out, v)
			return nil
		},
	}
}

// walk follows path from o one property at a time.
func walk(o *mirror.Object[any], path []string) (*mirror.Object[any], error) {
	cur := o
	for i, name := range path {
		next, err := cur.Property(name)
		if err != nil {
			at := strings.Join(path[:i+1], ".")
			if errors.Is(err, types.ErrPropertyNotFound) || errors.Is(err, types.ErrPropertyAccess) {
				return nil, userError("%s: %w", at, err)
			}
			return nil, sysError("%s: %w", at, err)
		}
		cur = next
	}
	return cur, nil
}
