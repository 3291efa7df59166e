package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/armada/internal/ports/primary"
)

// LogAdapter prints the fleet audit log.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{service: service, out: out}
}

// List prints log entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tFLEET\tACTOR\tACTION\tCHANGE")
	for _, e := range entries {
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %s → %s", e.FieldName, dashIfEmpty(e.OldValue), dashIfEmpty(e.NewValue))
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", e.CreatedAt, e.FleetID, e.ActorID, actionColor(e.Action).Sprint(e.Action), change)
	}
	w.Flush()
	return entries, nil
}

// Prune deletes entries older than days and reports how many were removed.
func (a *LogAdapter) Prune(ctx context.Context, days int) (int, error) {
	n, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "✓ Pruned %d log entries older than %d days\n", n, days)
	return n, nil
}

func actionColor(action string) *color.Color {
	switch action {
	case "create":
		return color.New(color.FgGreen)
	case "delete":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}
