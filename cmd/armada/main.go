package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/armada/internal/cli"
	"github.com/example/armada/internal/version"
	"github.com/example/armada/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "armada",
		Short:   "armada - persisted fleet records",
		Version: version.String(),
		Long: `armada manages persisted fleets: their ship manifest, the resources they carry,
and the capacity and value derived from the ship-info table.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			actor, _ := cmd.Flags().GetString("actor")

			wire.SetConfigPath(configPath)
			cli.SetActor(actor)

			// init writes the config before wiring services
			if cmd.Name() == "init" {
				return nil
			}
			return wire.Init()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.armada/armada.toml)")
	rootCmd.PersistentFlags().String("actor", "", "Actor recorded in the fleet log (default system)")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.UnitsCmd())
	rootCmd.AddCommand(cli.FleetCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
