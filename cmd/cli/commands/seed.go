package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"blood-connect/internal/pkg/fixtures"
	"blood-connect/internal/repository"
)

// SeedCmd loads fixtures into every empty collection.
func SeedCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixture data into empty collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				path = app.Cfg.FixturesPath
			}

			if reset {
				if err := app.Repos.Reset(app.Ctx); err != nil {
					return err
				}
				fmt.Println("Cleared all collections")
			}

			var (
				data *repository.SeedData
				err  error
			)
			if path != "" {
				data, err = fixtures.LoadFile(path, bcrypt.DefaultCost)
			} else {
				data, err = fixtures.Default(bcrypt.DefaultCost)
			}
			if err != nil {
				return err
			}

			seeded, err := app.Repos.Seed(app.Ctx, data)
			if err != nil {
				return err
			}

			if len(seeded) == 0 {
				fmt.Println("Nothing to seed - every collection already holds data.")
				return nil
			}
			fmt.Printf("\n✓ Seeded %d collections:\n", len(seeded))
			for _, name := range seeded {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().Bool("reset", false, "Drop every collection before seeding")
	cmd.Flags().String("file", "", "YAML fixtures file (defaults to the built-in set)")
	return cmd
}
