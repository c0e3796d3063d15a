package main

import (
	"fmt"

	"flightmap/internal/game/airspace"
	"flightmap/internal/storage"

	"github.com/spf13/cobra"
)

func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <CSV>",
		Short: "Import airports from a CSV file into the configured database",
		Long: `Import airports from a CSV with iata_code, airport_name, city (or
city_iata_code), country_name, latitude and longitude columns. Existing
airports with the same code are updated.

Examples:
  client import airports.csv
  FLIGHTMAP_DATABASE_TYPE=postgres client import airports.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := airspace.LoadCSVFile(args[0])
			if err != nil {
				return err
			}

			store, err := storage.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.SaveAirports(cmd.Context(), dir.Airports())
			if err != nil {
				return err
			}
			fmt.Printf("imported %d airports into %s (%d rows skipped)\n", n, cfg.Database.Type, dir.Skipped())
			return nil
		},
	}
}
