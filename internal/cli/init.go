package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize mirror configuration and catalog",
		Long:  "Create the configuration directory and config.yaml, then initialize the snapshot catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(f)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(s.configDir, 0o755); err != nil {
				return sysError("create config directory: %w", err)
			}
			configPath := filepath.Join(s.configDir, configFileExt)
			written, err := writeConfigIfMissing(configPath, s.config.DataDir)
			if err != nil {
				return sysError("write config: %w", err)
			}

			backend, err := attachCatalog(s)
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError("finalize catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "wrote %s\n", configPath)
			}
			fmt.Fprintf(out, "catalog initialized in %s\n", s.config.DataDir)
			return nil
		},
	}
}
