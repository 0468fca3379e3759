package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/domain/repository"
	"BoothMap-App/internal/infrastructure/database"
)

// Bucket layout inherited from the upstream data pipeline.
const (
	supabaseBasePrefix    = "shp_files_state_wise/"
	supabaseStateManifest = supabaseBasePrefix + "states.json"
)

// SupabaseLayerRepository downloads state layers from a Supabase Storage
// bucket. Layers are stored per state under shp_files_state_wise/, with
// a states.json manifest listing the available states.
type SupabaseLayerRepository struct {
	client *database.SupabaseClient
	bucket string
}

// NewSupabaseLayerRepository creates a repository over the given bucket.
func NewSupabaseLayerRepository(client *database.SupabaseClient, bucket string) repository.LayerRepository {
	return &SupabaseLayerRepository{
		client: client,
		bucket: bucket,
	}
}

// ListStates downloads and parses the state manifest.
func (r *SupabaseLayerRepository) ListStates(ctx context.Context) ([]string, error) {
	data, err := r.client.GetClient().Storage.DownloadFile(r.bucket, supabaseStateManifest)
	if err != nil {
		return nil, fmt.Errorf("downloading state manifest: %w", err)
	}

	var states []string
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("parsing state manifest: %w", err)
	}
	sort.Strings(states)
	return states, nil
}

// RegionLayer downloads the assembly or parliamentary boundary object.
func (r *SupabaseLayerRepository) RegionLayer(ctx context.Context, state, selectionType string) (*model.RegionLayer, error) {
	if !model.IsSelectionType(selectionType) {
		return nil, fmt.Errorf("unknown selection type %q", selectionType)
	}
	data, err := r.download(state, selectionType)
	if err != nil {
		return nil, err
	}
	return decodeRegionLayer(data, selectionType)
}

// BoothLayer downloads the booth point object for a state.
func (r *SupabaseLayerRepository) BoothLayer(ctx context.Context, state string) (*model.BoothLayer, error) {
	data, err := r.download(state, "booth")
	if err != nil {
		return nil, err
	}
	return decodeBoothLayer(data)
}

func (r *SupabaseLayerRepository) download(state, kind string) ([]byte, error) {
	path := fmt.Sprintf("%s%s/%s.%s.geojson", supabaseBasePrefix, state, state, kind)
	data, err := r.client.GetClient().Storage.DownloadFile(r.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("downloading %s layer for %s: %w (%s)", kind, state, repository.ErrLayerNotFound, err)
	}
	return data, nil
}
