package app

import (
	"context"
	"fmt"

	"github.com/example/armada/internal/ports/primary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	catalog ShipCatalog
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(catalog ShipCatalog) *CatalogServiceImpl {
	return &CatalogServiceImpl{catalog: catalog}
}

// ListShips returns every fleet-capable ship type ordered by ID.
func (s *CatalogServiceImpl) ListShips(ctx context.Context) ([]*primary.ShipType, error) {
	if err := s.catalog.Populate(ctx); err != nil {
		return nil, fmt.Errorf("failed to load ship catalog: %w", err)
	}

	ships := s.catalog.Ships()
	out := make([]*primary.ShipType, len(ships))
	for i, info := range ships {
		out[i] = &primary.ShipType{
			ID:          info.ID,
			Name:        info.Name,
			Capacity:    info.Capacity,
			Metal:       info.Cost.Metal,
			Crystal:     info.Cost.Crystal,
			Deuterium:   info.Cost.Deuterium,
			CostInMetal: info.CostInMetal,
		}
	}
	return out, nil
}

// Ensure CatalogServiceImpl implements the interface
var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
