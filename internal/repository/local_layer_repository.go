package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/domain/repository"
)

// LocalLayerRepository reads layers from a data directory laid out as
// <dir>/<state>/<state>.{assembly|parliamentary|booth}.geojson.
type LocalLayerRepository struct {
	dataDir string
}

// NewLocalLayerRepository creates a repository over the given data dir.
func NewLocalLayerRepository(dataDir string) repository.LayerRepository {
	return &LocalLayerRepository{dataDir: dataDir}
}

// ListStates returns the state subdirectories, sorted.
func (r *LocalLayerRepository) ListStates(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("data directory %s: %w", r.dataDir, repository.ErrLayerNotFound)
		}
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	var states []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			states = append(states, e.Name())
		}
	}
	sort.Strings(states)
	return states, nil
}

// RegionLayer loads the assembly or parliamentary boundary file.
func (r *LocalLayerRepository) RegionLayer(ctx context.Context, state, selectionType string) (*model.RegionLayer, error) {
	if !model.IsSelectionType(selectionType) {
		return nil, fmt.Errorf("unknown selection type %q", selectionType)
	}
	data, err := r.readLayer(state, selectionType)
	if err != nil {
		return nil, err
	}
	return decodeRegionLayer(data, selectionType)
}

// BoothLayer loads the booth point file for a state.
func (r *LocalLayerRepository) BoothLayer(ctx context.Context, state string) (*model.BoothLayer, error) {
	data, err := r.readLayer(state, "booth")
	if err != nil {
		return nil, err
	}
	return decodeBoothLayer(data)
}

func (r *LocalLayerRepository) readLayer(state, kind string) ([]byte, error) {
	path := filepath.Join(r.dataDir, state, fmt.Sprintf("%s.%s.geojson", state, kind))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s layer for %s: %w", kind, state, repository.ErrLayerNotFound)
		}
		return nil, fmt.Errorf("reading %s layer for %s: %w", kind, state, err)
	}
	return data, nil
}
