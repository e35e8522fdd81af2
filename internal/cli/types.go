// Commands that describe the registered type graph: types, show and path.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

func newTypesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records := mirror.Describe()
			if f.jsonMode {
				if records == nil {
					records = []types.TypeRecord{}
				}
				return writeJSON(cmd.OutOrStdout(), records)
			}

			t := newTable(cmd.OutOrStdout(), "NAME", "GO TYPE", "BASES", "CONVERSIONS", "PROPERTIES", "FACTORY")
			for _, r := range records {
				t.row(r.Name, r.GoType,
					strconv.Itoa(len(r.Bases)),
					strconv.Itoa(len(r.Conversions)),
					strconv.Itoa(len(r.Properties)),
					strconv.FormatBool(r.Factory))
			}
			return t.flush()
		},
	}
}

func newShowCmd(f *rootFlags) *cobra.Command {
	var yamlMode bool
	cmd := &cobra.Command{
		Use:   "show <type>",
		Short: "Show the bases, conversions and properties of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := lookupType(args[0])
			if err != nil {
				return err
			}
			r := typ.Record()

			out := cmd.OutOrStdout()
			switch {
			case f.jsonMode:
				return writeJSON(out, r)
			case yamlMode:
				return writeYAML(out, r)
			}

			fmt.Fprintf(out, "Name:        %s\n", r.Name)
			fmt.Fprintf(out, "Go type:     %s\n", r.GoType)
			fmt.Fprintf(out, "Bases:       %s\n", orNone(r.Bases))
			fmt.Fprintf(out, "Conversions: %s\n", orNone(r.Conversions))
			fmt.Fprintf(out, "Factory:     %t\n", r.Factory)
			if len(r.Properties) == 0 {
				fmt.Fprintln(out, "Properties:  -")
				return nil
			}
			fmt.Fprintln(out, "Properties:")
			t := newTable(out, "  NAME", "TYPE", "ACCESS")
			for _, p := range r.Properties {
				t.row("  "+p.Name, p.Type, access(p))
			}
			return t.flush()
		},
	}
	cmd.Flags().BoolVar(&yamlMode, "yaml", false, "output in YAML format")
	return cmd
}

// access renders the readable and writable flags of a property.
func access(p types.PropertyRecord) string {
	switch {
	case p.Readable && p.Writable:
		return "read-write"
	case p.Readable:
		return "read-only"
	case p.Writable:
		return "write-only"
	}
	return "none"
}

func newPathCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Explain how a value of one type is read as another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := lookupType(args[0])
			if err != nil {
				return err
			}
			to, err := lookupType(args[1])
			if err != nil {
				return err
			}

			s, err := loadSettings(f)
			if err != nil {
				return err
			}
			explainer, err := mirror.NewExplainer(s.config.GetCacheSize())
			if err != nil {
				return sysError("create explainer: %w", err)
			}

			hops, ok := explainer.Explain(from, to)
			out := cmd.OutOrStdout()
			if f.jsonMode {
				if hops == nil {
					hops = []mirror.Hop{}
				}
				return writeJSON(out, map[string]any{"from": from.Name(), "to": to.Name(), "found": ok, "hops": hops})
			}
			if !ok {
				return userError("no path from %s to %s", from.Name(), to.Name())
			}
			if len(hops) == 0 {
				fmt.Fprintf(out, "%s is %s\n", from.Name(), to.Name())
				return nil
			}
			for i, h := range hops {
				fmt.Fprintf(out, "%d. %s %s -> %s\n", i+1, h.Kind, h.From, h.To)
			}
			return nil
		},
	}
}
