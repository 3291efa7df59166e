package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseShipFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		wantErr bool
		wantLen int
	}{
		{name: "empty", values: nil, wantLen: 0},
		{name: "several", values: []string{"202=3", "204 = -1.5"}, wantLen: 2},
		{name: "missing separator", values: []string{"202"}, wantErr: true},
		{name: "bad id", values: []string{"cargo=3"}, wantErr: true},
		{name: "bad count", values: []string{"202=many"}, wantErr: true},
		{name: "NaN count", values: []string{"202=NaN"}, wantErr: true},
		{name: "infinite count", values: []string{"202=-inf"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseShipFlags(tt.values)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("got %d deltas, want %d", len(got), tt.wantLen)
			}
		})
	}

	got, _ := parseShipFlags([]string{"204 = -1.5"})
	if got[0].ShipID != 204 || got[0].Delta != -1.5 {
		t.Errorf("unexpected delta %+v", got[0])
	}
}

func TestParseCargoFlags(t *testing.T) {
	got, err := parseCargoFlags([]string{"metal=100.25", "d=-3"})
	if err != nil {
		t.Fatalf("parseCargoFlags failed: %v", err)
	}
	if got[0].Resource != "metal" || !got[0].Delta.Equal(decimal.RequireFromString("100.25")) {
		t.Errorf("unexpected first delta %+v", got[0])
	}
	if got[1].Resource != "d" || !got[1].Delta.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("unexpected second delta %+v", got[1])
	}

	if _, err := parseCargoFlags([]string{"metal"}); err == nil {
		t.Error("expected error for missing amount")
	}
	if _, err := parseCargoFlags([]string{"metal=lots"}); err == nil {
		t.Error("expected error for bad amount")
	}
}

func TestParseFleetID(t *testing.T) {
	if id, err := parseFleetID("42"); err != nil || id != 42 {
		t.Errorf("parseFleetID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-1", "fleet"} {
		if _, err := parseFleetID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
