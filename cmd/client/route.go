package main

import (
	"fmt"
	"strings"

	"flightmap/internal/game/session"

	"github.com/spf13/cobra"
)

func NewRouteCommand() *cobra.Command {
	var wkt bool

	cmd := &cobra.Command{
		Use:   "route <ORIGIN> <DESTINATION>",
		Short: "Find the shortest route between two airports",
		Long: `Find the shortest route between two airports over legs no longer than
routing.maxLegKm and print its stops and distances.

Examples:
  client route ICN LAX
  client route ICN LAX --wkt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			plan, err := newPlanner(cfg, dir).PlanRoute(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			view, err := session.BuildRouteView(dir, plan, cfg.Sim.StepsPerSegment)
			if err != nil {
				return err
			}

			if !view.Found() {
				return fmt.Errorf("%s", view.Summary)
			}

			fmt.Printf("%s (%s)\n", strings.Join(plan.Stops, " -> "), view.Summary)
			for _, stop := range view.Stops {
				fmt.Printf("  %-3s %-40s %s\n", stop.Airport.Code, stop.Airport.Name, stop.Airport.Country)
			}
			fmt.Printf("route distance:        %.0f km\n", view.ReportedKm)
			fmt.Printf("great-circle distance: %.0f km\n", view.GreatCircleKm)

			if wkt {
				text, err := view.Path.WKT()
				if err != nil {
					return fmt.Errorf("export route geometry: %w", err)
				}
				fmt.Println(text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wkt, "wkt", false, "Print the route geometry as WKT")
	return cmd
}
