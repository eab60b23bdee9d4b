package seed

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"clinic-scribe/internal/app"
	appseed "clinic-scribe/internal/app/seed"
)

var (
	dates     []string
	bookEvery int
)

func init() {
	Cmd.Flags().StringSliceVarP(&dates, "date", "d", nil, "date (YYYY-MM-DD) to generate slots for, repeatable")
	Cmd.Flags().IntVarP(&bookEvery, "book-every", "b", 2, "book every Nth slot (0 to book none)")

	Cmd.MarkFlagRequired("date")
}

// Cmd represents the seed command
var Cmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo patients and appointment slots",
	Long: `Populate the database with demo patients and appointment slots.

Generates half-hour slots between 09:00 and 16:00 for each given date and
books a portion of them round-robin across the demo patients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dao := app.InitializeDAO()
		defer dao.Close()

		result, err := appseed.NewSeeder(dao).Seed(dates, bookEvery)
		if err != nil {
			log.Fatalf("Seeding failed: %v\n", err)
		}

		fmt.Printf("Seeded %d patients, %d insurances, %d appointments (%d booked)\n",
			result.Patients, result.Insurances, result.Appointments, result.Booked)
		return nil
	},
}
