package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/armada/internal/ports/primary"
)

// CatalogAdapter prints the ship-info table.
type CatalogAdapter struct {
	service primary.CatalogService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.CatalogService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{service: service, out: out}
}

// List prints every fleet-capable ship type.
func (a *CatalogAdapter) List(ctx context.Context) ([]*primary.ShipType, error) {
	ships, err := a.service.ListShips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	if len(ships) == 0 {
		fmt.Fprintln(a.out, "No ship types in the unit catalog.")
		return ships, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCAPACITY\tMETAL\tCRYSTAL\tDEUTERIUM\tIN METAL")
	fmt.Fprintln(w, "--\t----\t--------\t-----\t-------\t---------\t--------")
	for _, s := range ships {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.Name,
			formatCount(s.Capacity),
			formatCount(s.Metal),
			formatCount(s.Crystal),
			formatCount(s.Deuterium),
			formatCount(s.CostInMetal),
		)
	}
	w.Flush()
	return ships, nil
}
