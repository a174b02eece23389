package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RemindCmd groups the reminder fan-outs.
func RemindCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send reminder notifications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "eligible",
		Short: "Tell donors whose cooldown has ended that they can donate again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := app.Services.Donor.SendEligibilityReminders(app.Ctx)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Notified %d donors\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "camp <camp_id>",
		Short: "Remind everyone booked into a camp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := app.Services.Camp.SendReminders(app.Ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Notified %d attendees\n", count)
			return nil
		},
	})

	return cmd
}
