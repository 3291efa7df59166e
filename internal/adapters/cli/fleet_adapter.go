package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/armada/internal/ports/primary"
)

// FleetAdapter is a thin adapter that translates CLI operations to FleetService calls.
// It depends only on the FleetService interface, enabling easy testing with mocks.
type FleetAdapter struct {
	service primary.FleetService
	out     io.Writer
}

// NewFleetAdapter creates a new FleetAdapter with the given service.
func NewFleetAdapter(service primary.FleetService, out io.Writer) *FleetAdapter {
	return &FleetAdapter{
		service: service,
		out:     out,
	}
}

// Show displays a hydrated fleet.
func (a *FleetAdapter) Show(ctx context.Context, fleetID int64) (*primary.Fleet, error) {
	f, err := a.service.GetFleet(ctx, fleetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fleet: %w", err)
	}
	a.printFleet(f)
	return f, nil
}

// Fields displays the stored columns of a fleet without hydrating it.
func (a *FleetAdapter) Fields(ctx context.Context, fleetID int64) (map[string]any, error) {
	fields, err := a.service.GetFleetFields(ctx, fleetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fleet fields: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(w, "%s\t%v\n", name, fields[name])
	}
	w.Flush()
	return fields, nil
}

// List lists stored fleets.
func (a *FleetAdapter) List(ctx context.Context, filters primary.FleetFilters) ([]*primary.FleetSummary, error) {
	fleets, err := a.service.ListFleets(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list fleets: %w", err)
	}

	if len(fleets) == 0 {
		fmt.Fprintln(a.out, "No fleets found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first fleet:")
		fmt.Fprintln(a.out, "  armada fleet create --owner 1 --from 1:100:4 --to 1:120:7 --ship 202=3")
		return fleets, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNER\tMISSION\tFROM\tTO\tSHIPS\tMANIFEST\tGROUP")
	fmt.Fprintln(w, "--\t-----\t-------\t----\t--\t-----\t--------\t-----")

	for _, f := range fleets {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID,
			f.OwnerID,
			f.Mission,
			f.Start,
			f.End,
			formatCount(f.ShipCount),
			f.Manifest,
			dashIfEmpty(f.Group),
		)
	}

	w.Flush()
	return fleets, nil
}

// Create creates a fleet and displays it.
func (a *FleetAdapter) Create(ctx context.Context, req primary.CreateFleetRequest) (*primary.CreateFleetResponse, error) {
	resp, err := a.service.CreateFleet(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created fleet %d\n", resp.FleetID)
	a.printFleet(resp.Fleet)
	return resp, nil
}

// ChangeShips applies ship deltas to a fleet.
func (a *FleetAdapter) ChangeShips(ctx context.Context, req primary.ChangeShipsRequest) (*primary.ChangeFleetResponse, error) {
	resp, err := a.service.ChangeShips(ctx, req)
	if err != nil {
		return nil, err
	}
	a.printChange(resp)
	return resp, nil
}

// ChangeCargo applies resource deltas to a fleet.
func (a *FleetAdapter) ChangeCargo(ctx context.Context, req primary.ChangeCargoRequest) (*primary.ChangeFleetResponse, error) {
	resp, err := a.service.ChangeCargo(ctx, req)
	if err != nil {
		return nil, err
	}
	a.printChange(resp)
	return resp, nil
}

// Split splits ships off a fleet into a new one.
func (a *FleetAdapter) Split(ctx context.Context, req primary.SplitFleetRequest) (*primary.SplitFleetResponse, error) {
	resp, err := a.service.SplitFleet(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Split fleet %d into %d (group %s)\n", resp.SourceID, resp.NewFleetID, resp.Group)
	if resp.SourceDeleted {
		fmt.Fprintf(a.out, "  %s fleet %d has no ships left\n", color.New(color.FgRed).Sprint("DESTROYED"), resp.SourceID)
	}
	return resp, nil
}

func (a *FleetAdapter) printChange(resp *primary.ChangeFleetResponse) {
	if resp.Deleted {
		fmt.Fprintf(a.out, "%s fleet %d has no ships left\n", color.New(color.FgRed).Sprint("DESTROYED"), resp.FleetID)
		return
	}
	fmt.Fprintf(a.out, "✓ Fleet %d updated\n", resp.FleetID)
	a.printFleet(resp.Fleet)
}

func (a *FleetAdapter) printFleet(f *primary.Fleet) {
	fmt.Fprintf(a.out, "\nFleet: %d\n", f.ID)
	fmt.Fprintf(a.out, "Owner:    %d\n", f.OwnerID)
	if f.TargetOwnerID != 0 {
		fmt.Fprintf(a.out, "Target:   %d\n", f.TargetOwnerID)
	}
	fmt.Fprintf(a.out, "Mission:  %s\n", f.Mission)
	fmt.Fprintf(a.out, "Route:    %s → %s\n", f.Start, f.End)
	if f.Group != "" {
		fmt.Fprintf(a.out, "Group:    %s\n", f.Group)
	}
	fmt.Fprintf(a.out, "Cargo:    metal %s, crystal %s, deuterium %s\n", f.Metal, f.Crystal, f.Deuterium)
	fmt.Fprintf(a.out, "Capacity: %s free\n", capacityColor(f).Sprint(f.Capacity.String()))
	fmt.Fprintf(a.out, "Value:    %s metal\n", formatCount(f.CostInMetal))
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SHIP\tNAME\tCOUNT")
	fmt.Fprintln(w, "----\t----\t-----")
	for _, s := range f.Ships {
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.ShipID, dashIfEmpty(s.Name), formatCount(s.Count))
	}
	fmt.Fprintf(w, "\t%s\t%s\n", "total", formatCount(f.ShipCount))
	w.Flush()
	fmt.Fprintln(a.out)
}

func capacityColor(f *primary.Fleet) *color.Color {
	if f.Capacity.IsZero() {
		return color.New(color.FgYellow)
	}
	return color.New(color.FgGreen)
}

func formatCount(n float64) string {
	return fmt.Sprintf("%g", n)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
