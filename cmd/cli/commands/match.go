package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func MatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <request_id>",
		Short: "Run donor matching for a blood request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Services.Blood.AutoMatch(app.Ctx, args[0])
			if err != nil {
				return err
			}

			app.Logger.Info("match command finished",
				zap.String("request_id", args[0]),
				zap.Bool("matched", result.Matched))

			if !result.Matched {
				fmt.Println("No eligible donors found.")
				return nil
			}
			fmt.Printf("\n✓ Matched %d donors:\n", len(result.Donors))
			for _, d := range result.Donors {
				fmt.Printf("  - %s (%s) %s, %s\n", d.Name, d.ID, d.BloodGroup, d.Location)
			}
			return nil
		},
	}
}
