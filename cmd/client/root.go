package main

import (
	"fmt"
	"os"

	"flightmap/internal/config"
	"flightmap/internal/logging"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
)

// NewRootCommand creates the root command. Run without a subcommand it
// opens the map window.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "client",
		Short: "Flight map - great-circle routes and a live fleet of aircraft",
		Long: `Renders airports on a Web Mercator map and animates aircraft flying
great-circle routes between them, or shows the shortest route between two
airports.

Configuration is loaded with this priority:
1. Environment variables (FLIGHTMAP_* prefix)
2. Config file (flightmap.yaml)
3. Default values

Examples:
  client
  client simulate --ticks 600 --out run.msgpack.zst
  client route ICN LAX --wkt
  client distance ICN NRT
  client import airports.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			return logging.Setup(cfg.Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), cfg)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default flightmap.yaml in . or ./configs)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewRouteCommand())
	rootCmd.AddCommand(NewDistanceCommand())
	rootCmd.AddCommand(NewImportCommand())

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
