package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/armada/internal/ports/primary"
	"github.com/example/armada/internal/wire"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Manage fleets",
	Long:  "Create, inspect and change persisted fleets: ship manifest, cargo and route",
}

var fleetShowCmd = &cobra.Command{
	Use:   "show [fleet-id]",
	Short: "Show a fleet with its ships, cargo and free capacity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFleetID(args[0])
		if err != nil {
			return err
		}
		_, err = wire.FleetAdapter().Show(NewContext(), id)
		return err
	},
}

var fleetFieldsCmd = &cobra.Command{
	Use:   "fields [fleet-id]",
	Short: "Show the stored columns of a fleet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFleetID(args[0])
		if err != nil {
			return err
		}
		_, err = wire.FleetAdapter().Fields(NewContext(), id)
		return err
	},
}

var fleetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fleets",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetInt64("owner")
		mission, _ := cmd.Flags().GetString("mission")
		group, _ := cmd.Flags().GetString("group")
		limit, _ := cmd.Flags().GetInt("limit")

		_, err := wire.FleetAdapter().List(NewContext(), primary.FleetFilters{
			OwnerID: owner,
			Mission: mission,
			Group:   group,
			Limit:   limit,
		})
		return err
	},
}

var fleetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a fleet",
	Long: `Create a fleet from a ship manifest and optional cargo.

Examples:
  armada fleet create --owner 1 --from 1:100:4 --to 1:120:7 --ship 202=3 --cargo metal=4000
  armada fleet create --owner 1 --mission attack --target 2 --from 1:100:4 --to 2:40:9 --ship 204=50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetInt64("owner")
		target, _ := cmd.Flags().GetInt64("target")
		mission, _ := cmd.Flags().GetString("mission")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		fromPlanet, _ := cmd.Flags().GetInt64("from-planet-id")
		toPlanet, _ := cmd.Flags().GetInt64("to-planet-id")
		departAt, _ := cmd.Flags().GetInt64("depart-at")
		arriveAt, _ := cmd.Flags().GetInt64("arrive-at")
		stay, _ := cmd.Flags().GetInt64("stay")
		group, _ := cmd.Flags().GetString("group")
		shipFlags, _ := cmd.Flags().GetStringArray("ship")
		cargoFlags, _ := cmd.Flags().GetStringArray("cargo")

		ships, err := parseShipFlags(shipFlags)
		if err != nil {
			return err
		}
		cargo, err := parseCargoFlags(cargoFlags)
		if err != nil {
			return err
		}

		_, err = wire.FleetAdapter().Create(NewContext(), primary.CreateFleetRequest{
			OwnerID:       owner,
			TargetOwnerID: target,
			Mission:       mission,
			Start:         from,
			End:           to,
			StartPlanetID: fromPlanet,
			EndPlanetID:   toPlanet,
			DepartAt:      departAt,
			ArriveAt:      arriveAt,
			Stay:          stay,
			Group:         group,
			Ships:         ships,
			Cargo:         cargo,
		})
		if err != nil {
			return fmt.Errorf("failed to create fleet: %w", err)
		}
		return nil
	},
}

var fleetShipsCmd = &cobra.Command{
	Use:   "ships [fleet-id]",
	Short: "Add or remove ships",
	Long: `Apply ship count deltas in one transaction. A fleet left without ships is deleted.

Examples:
  armada fleet ships 12 --ship 202=-1 --ship 204=5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFleetID(args[0])
		if err != nil {
			return err
		}
		shipFlags, _ := cmd.Flags().GetStringArray("ship")
		ships, err := parseShipFlags(shipFlags)
		if err != nil {
			return err
		}
		if len(ships) == 0 {
			return fmt.Errorf("at least one --ship is required")
		}

		_, err = wire.FleetAdapter().ChangeShips(NewContext(), primary.ChangeShipsRequest{FleetID: id, Deltas: ships})
		if err != nil {
			return fmt.Errorf("failed to change ships: %w", err)
		}
		return nil
	},
}

var fleetCargoCmd = &cobra.Command{
	Use:   "cargo [fleet-id]",
	Short: "Load or unload resources",
	Long: `Apply resource deltas in one transaction.

Examples:
  armada fleet cargo 12 --cargo metal=-1000 --cargo deuterium=250`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFleetID(args[0])
		if err != nil {
			return err
		}
		cargoFlags, _ := cmd.Flags().GetStringArray("cargo")
		cargo, err := parseCargoFlags(cargoFlags)
		if err != nil {
			return err
		}
		if len(cargo) == 0 {
			return fmt.Errorf("at least one --cargo is required")
		}

		_, err = wire.FleetAdapter().ChangeCargo(NewContext(), primary.ChangeCargoRequest{FleetID: id, Deltas: cargo})
		if err != nil {
			return fmt.Errorf("failed to change cargo: %w", err)
		}
		return nil
	},
}

var fleetSplitCmd = &cobra.Command{
	Use:   "split [fleet-id]",
	Short: "Move ships and cargo into a new fleet on the same route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFleetID(args[0])
		if err != nil {
			return err
		}
		shipFlags, _ := cmd.Flags().GetStringArray("ship")
		cargoFlags, _ := cmd.Flags().GetStringArray("cargo")
		ships, err := parseShipFlags(shipFlags)
		if err != nil {
			return err
		}
		cargo, err := parseCargoFlags(cargoFlags)
		if err != nil {
			return err
		}

		_, err = wire.FleetAdapter().Split(NewContext(), primary.SplitFleetRequest{FleetID: id, Ships: ships, Cargo: cargo})
		if err != nil {
			return fmt.Errorf("failed to split fleet: %w", err)
		}
		return nil
	},
}

// FleetCmd returns the fleet command
func FleetCmd() *cobra.Command {
	// fleet list
	fleetListCmd.Flags().Int64("owner", 0, "Filter by owner ID")
	fleetListCmd.Flags().StringP("mission", "m", "", "Filter by mission")
	fleetListCmd.Flags().StringP("group", "g", "", "Filter by fleet group")
	fleetListCmd.Flags().IntP("limit", "n", 0, "Maximum fleets to show")

	// fleet create
	fleetCreateCmd.Flags().Int64("owner", 0, "Owner ID (required)")
	fleetCreateCmd.Flags().Int64("target", 0, "Target owner ID")
	fleetCreateCmd.Flags().StringP("mission", "m", "transport", "Mission name or code")
	fleetCreateCmd.Flags().String("from", "", "Start coordinates galaxy:system:planet[:type] (required)")
	fleetCreateCmd.Flags().String("to", "", "End coordinates galaxy:system:planet[:type] (required)")
	fleetCreateCmd.Flags().Int64("from-planet-id", 0, "Start planet ID")
	fleetCreateCmd.Flags().Int64("to-planet-id", 0, "End planet ID")
	fleetCreateCmd.Flags().Int64("depart-at", 0, "Departure time in unix seconds (default now)")
	fleetCreateCmd.Flags().Int64("arrive-at", 0, "Arrival time in unix seconds (default departure)")
	fleetCreateCmd.Flags().Int64("stay", 0, "Seconds spent at the destination")
	fleetCreateCmd.Flags().StringP("group", "g", "", "Fleet group ID")
	fleetCreateCmd.Flags().StringArrayP("ship", "s", nil, "Ships as ID=COUNT (repeatable)")
	fleetCreateCmd.Flags().StringArrayP("cargo", "c", nil, "Cargo as RESOURCE=AMOUNT (repeatable)")
	_ = fleetCreateCmd.MarkFlagRequired("owner")
	_ = fleetCreateCmd.MarkFlagRequired("from")
	_ = fleetCreateCmd.MarkFlagRequired("to")

	// fleet ships / cargo / split
	fleetShipsCmd.Flags().StringArrayP("ship", "s", nil, "Ship delta as ID=COUNT (repeatable)")
	fleetCargoCmd.Flags().StringArrayP("cargo", "c", nil, "Resource delta as RESOURCE=AMOUNT (repeatable)")
	fleetSplitCmd.Flags().StringArrayP("ship", "s", nil, "Ships to move as ID=COUNT (repeatable)")
	fleetSplitCmd.Flags().StringArrayP("cargo", "c", nil, "Cargo to move as RESOURCE=AMOUNT (repeatable)")

	fleetCmd.AddCommand(fleetShowCmd)
	fleetCmd.AddCommand(fleetFieldsCmd)
	fleetCmd.AddCommand(fleetListCmd)
	fleetCmd.AddCommand(fleetCreateCmd)
	fleetCmd.AddCommand(fleetShipsCmd)
	fleetCmd.AddCommand(fleetCargoCmd)
	fleetCmd.AddCommand(fleetSplitCmd)

	return fleetCmd
}
