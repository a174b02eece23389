package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func StatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Services.Blood.Statistics(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\nRequests:  %d total, %d pending, %d completed\n",
				stats.TotalRequests, stats.PendingRequests, stats.CompletedRequests)
			fmt.Printf("Donors:    %d total, %d available\n", stats.TotalDonors, stats.AvailableDonors)
			fmt.Printf("Low stock: %v\n", stats.LowStockTypes)
			fmt.Printf("Critical:  %v\n\n", stats.CriticalStockTypes)
			return nil
		},
	}
}
