// Commands that store and list snapshots of the type graph in the catalog.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

func newExportCmd(f *rootFlags) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Store a snapshot of the registered types in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(f)
			if err != nil {
				return err
			}
			backend, err := attachCatalog(s)
			if err != nil {
				return err
			}
			defer backend.Detach()

			records := mirror.Describe()
			id, err := backend.Save(label, records)
			if err != nil {
				return sysError("save snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			if f.jsonMode {
				return writeJSON(out, map[string]any{"snapshot_id": id, "label": label, "type_count": len(records)})
			}
			fmt.Fprintln(out, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "label stored with the snapshot")
	return cmd
}

func newSnapshotsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots [id]",
		Short: "List stored snapshots, or show the types of one snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(f)
			if err != nil {
				return err
			}
			backend, err := attachCatalog(s)
			if err != nil {
				return err
			}
			defer backend.Detach()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				records, err := backend.Load(args[0])
				switch {
				case err == nil:
				case errors.Is(err, types.ErrInvalidID), errors.Is(err, types.ErrSnapshotNotFound):
					return userError("snapshot %s: %w", args[0], err)
				default:
					return sysError("load snapshot: %w", err)
				}
				if f.jsonMode {
					return writeJSON(out, records)
				}
				t := newTable(out, "NAME", "GO TYPE", "BASES", "CONVERSIONS")
				for _, r := range records {
					t.row(r.Name, r.GoType, orNone(r.Bases), orNone(r.Conversions))
				}
				return t.flush()
			}

			snaps, err := backend.Snapshots()
			if err != nil {
				return sysError("list snapshots: %w", err)
			}
			if f.jsonMode {
				if snaps == nil {
					snaps = []types.Snapshot{}
				}
				return writeJSON(out, snaps)
			}
			t := newTable(out, "ID", "LABEL", "TYPES", "CREATED")
			for _, sn := range snaps {
				t.row(sn.SnapshotID, sn.Label, strconv.Itoa(sn.TypeCount), sn.CreatedAt.Local().Format(time.DateTime))
			}
			return t.flush()
		},
	}
}
