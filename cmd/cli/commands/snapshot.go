package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errSnapshotsDisabled = errors.New("snapshots need MINIO_ENDPOINT to be configured")

func SnapshotCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export every collection to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Services.Snapshot == nil {
				return errSnapshotsDisabled
			}
			snap, err := app.Services.Snapshot.Export(app.Ctx)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Snapshot written to %s (%s)\n", snap.Prefix, strings.Join(snap.Collections, ", "))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Services.Snapshot == nil {
				return errSnapshotsDisabled
			}
			snaps, err := app.Services.Snapshot.List(app.Ctx)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("No snapshots found.")
				return nil
			}
			for _, s := range snaps {
				fmt.Printf("  %s  %d collections\n", s.Prefix, len(s.Collections))
			}
			return nil
		},
	})

	return cmd
}
