package main

import (
	"fmt"

	"flightmap/internal/geo"

	"github.com/spf13/cobra"
)

func NewDistanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <A> <B>",
		Short: "Great-circle distance and initial course between two airports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			a, ok := dir.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown airport %q", args[0])
			}
			b, ok := dir.Lookup(args[1])
			if !ok {
				return fmt.Errorf("unknown airport %q", args[1])
			}

			fmt.Printf("%s -> %s: %.0f km, initial course %03.0f\n",
				a.Code, b.Code,
				geo.GreatCircleDistance(a.Position(), b.Position()),
				geo.InitialBearing(a.Position(), b.Position()))
			return nil
		},
	}
}
