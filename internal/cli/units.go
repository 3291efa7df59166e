package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/armada/internal/wire"
)

// UnitsCmd returns the units command
func UnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List fleet-capable ship types",
		Long:  "List the ship-info table: cargo capacity, build cost and cost expressed in metal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.CatalogAdapter().List(NewContext())
			return err
		},
	}
}
