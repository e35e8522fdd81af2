package cli

import (
	"reflect"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mirror/internal/gen"
)

func newGenCmd() *cobra.Command {
	opts := gen.Options{}
	cmd := &cobra.Command{
		Use:   "gen <type>...",
		Short: "Print registration code for registered struct types",
		Long: "gen prints a Go file with one function per type that registers the\n" +
			"type, its embedded structs as bases and its exported fields as properties.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ts []reflect.Type
			for _, name := range args {
				typ, err := lookupType(name)
				if err != nil {
					return err
				}
				ts = append(ts, typ.GoType())
			}
			if err := gen.Render(cmd.OutOrStdout(), opts, ts...); err != nil {
				return userError("generate: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.PackagePath, "package-path", "", "import path of the package receiving the file")
	cmd.Flags().StringVar(&opts.PackageName, "package", "registry", "package name of the generated file")
	cmd.Flags().BoolVar(&opts.Export, "export", true, "export the generated functions")
	return cmd
}
