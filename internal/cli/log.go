package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/armada/internal/ports/primary"
	"github.com/example/armada/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View fleet activity logs",
	Long:  "View and manage the fleet audit trail",
}

var logListCmd = &cobra.Command{
	Use:   "list [fleet-id]",
	Short: "Show recent activity",
	Long:  "Show recent fleet log entries, optionally for one fleet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actorID, _ := cmd.Flags().GetString("actor")
		action, _ := cmd.Flags().GetString("action")
		limit, _ := cmd.Flags().GetInt("limit")

		filters := primary.LogFilters{
			ActorID: actorID,
			Action:  action,
			Limit:   limit,
		}
		if len(args) > 0 {
			id, err := parseFleetID(args[0])
			if err != nil {
				return err
			}
			filters.FleetID = id
		}

		if _, err := wire.LogAdapter().List(NewContext(), filters); err != nil {
			return fmt.Errorf("failed to fetch logs: %w", err)
		}
		return nil
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old log entries",
	Long:  "Delete log entries older than the specified number of days (default 30)",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			days = 30
		}

		if _, err := wire.LogAdapter().Prune(NewContext(), days); err != nil {
			return fmt.Errorf("failed to prune logs: %w", err)
		}
		return nil
	},
}

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	// log list
	logListCmd.Flags().String("actor", "", "Filter by actor ID")
	logListCmd.Flags().String("action", "", "Filter by action (create, update, delete)")
	logListCmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")

	// log prune
	logPruneCmd.Flags().Int("days", 30, "Delete entries older than N days")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logPruneCmd)

	return logCmd
}
