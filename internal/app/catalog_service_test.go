package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/armada/internal/catalog"
	"github.com/example/armada/internal/ports/secondary"
)

type failingUnitSource struct{}

func (failingUnitSource) UnitGroup(ctx context.Context, group string) ([]int, error) {
	return nil, errors.New("catalog unreadable")
}

func (failingUnitSource) UnitParams(ctx context.Context, id int) (secondary.UnitParams, error) {
	return secondary.UnitParams{}, errors.New("catalog unreadable")
}

func TestCatalogService_ListShips(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	ships, err := svc.ListShips(context.Background())
	if err != nil {
		t.Fatalf("ListShips failed: %v", err)
	}
	if len(ships) != 3 {
		t.Fatalf("expected 3 ships, got %d", len(ships))
	}
	if ships[0].ID != 202 || ships[2].ID != 204 {
		t.Errorf("ships not sorted: %d..%d", ships[0].ID, ships[2].ID)
	}
	if ships[0].Metal != 2000 || ships[0].CostInMetal != 6000 {
		t.Errorf("unexpected cost for %s: %+v", ships[0].Name, ships[0])
	}
}

func TestCatalogService_ListShips_PopulateError(t *testing.T) {
	cat, err := catalog.New(failingUnitSource{}, "fleet", catalog.DefaultRates)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	svc := NewCatalogService(cat)

	if _, err := svc.ListShips(context.Background()); err == nil {
		t.Error("expected populate error")
	}
}
