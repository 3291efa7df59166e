package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/armada/internal/config"
	"github.com/example/armada/internal/db"
	"github.com/example/armada/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the armada config and database",
		Long: `Write a default config (unless one exists) and migrate the database to the latest schema.

With --seed, a few demo fleets are inserted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")
			path := wire.ConfigPath()

			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				if err := config.SaveConfig(path, config.DefaultConfig(filepath.Dir(path))); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			} else if err != nil {
				return fmt.Errorf("failed to stat config: %w", err)
			}

			if err := wire.Init(); err != nil {
				return err
			}

			ctx := NewContext()
			version, err := db.CurrentVersion(ctx, wire.DB())
			if err != nil {
				return err
			}
			fmt.Printf("✓ Database (%s) at schema version %d\n", wire.Config().Database.Driver, version)

			if seed {
				ids, err := db.SeedFixtures(ctx, wire.DB())
				if err != nil {
					return fmt.Errorf("failed to seed fleets: %w", err)
				}
				fmt.Printf("✓ Seeded %d demo fleets\n", len(ids))
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  armada units")
			fmt.Println("  armada fleet list")
			return nil
		},
	}

	cmd.Flags().Bool("seed", false, "Insert demo fleets")
	return cmd
}
