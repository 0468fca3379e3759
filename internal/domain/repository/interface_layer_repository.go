package repository

import (
	"context"
	"errors"

	"BoothMap-App/internal/domain/model"
)

// ErrLayerNotFound marks data-absence: a state or layer that simply is
// not there. Callers map it to a 404 rather than a processing failure.
var ErrLayerNotFound = errors.New("layer not found")

// LayerRepository loads the geographic inputs for one state: the region
// boundary layer (assembly or parliamentary) and the booth point layer.
// Implementations exist for a local data directory, Postgres/PostGIS and
// Supabase Storage.
type LayerRepository interface {
	ListStates(ctx context.Context) ([]string, error)
	RegionLayer(ctx context.Context, state, selectionType string) (*model.RegionLayer, error)
	BoothLayer(ctx context.Context, state string) (*model.BoothLayer, error)
}
