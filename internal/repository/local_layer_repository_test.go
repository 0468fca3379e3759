package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoothMap-App/internal/domain/helper"
	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/domain/repository"
)

const assemblyGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"AC_NO": 102, "AC_NAME": "Southern"},
      "geometry": {"type": "Polygon", "coordinates": [[[78,12],[79,12],[79,13],[78,13],[78,12]]]}
    },
    {
      "type": "Feature",
      "properties": {"AC_NO": 101, "AC_NAME": "Central"},
      "geometry": {"type": "Polygon", "coordinates": [[[77,12],[78,12],[78,13],[77,13],[77,12]]]}
    }
  ]
}`

const boothGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"BOOTH_NO": 7, "BOOTH_NAME": "Primary School", "district": 3, "ac": 101},
      "geometry": {"type": "Point", "coordinates": [77.5, 12.5]}
    },
    {
      "type": "Feature",
      "properties": {"booth": "8", "name": "Community Hall"},
      "geometry": {"type": "Point", "coordinates": [78.5, 12.5]}
    }
  ]
}`

const mercatorBoothGeoJSON = `{
  "type": "FeatureCollection",
  "crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG::3857"}},
  "features": [
    {
      "type": "Feature",
      "properties": {"booth": "1"},
      "geometry": {"type": "Point", "coordinates": [8637393.0, 1403909.0]}
    }
  ]
}`

func writeTestState(t *testing.T, dir, state string) {
	t.Helper()
	stateDir := filepath.Join(dir, state)
	require.NoError(t, os.MkdirAll(stateDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(stateDir, state+".assembly.geojson"), []byte(assemblyGeoJSON), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(stateDir, state+".booth.geojson"), []byte(boothGeoJSON), 0o644))
}

func TestLocalRepository_ListStates(t *testing.T) {
	dir := t.TempDir()
	writeTestState(t, dir, "karnataka")
	writeTestState(t, dir, "goa")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	repo := NewLocalLayerRepository(dir)
	states, err := repo.ListStates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"goa", "karnataka"}, states)
}

func TestLocalRepository_ListStates_MissingDir(t *testing.T) {
	repo := NewLocalLayerRepository(filepath.Join(t.TempDir(), "nope"))
	_, err := repo.ListStates(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrLayerNotFound))
}

func TestLocalRepository_RegionLayer(t *testing.T) {
	dir := t.TempDir()
	writeTestState(t, dir, "karnataka")

	repo := NewLocalLayerRepository(dir)
	layer, err := repo.RegionLayer(context.Background(), "karnataka", model.SelectionTypeAssembly)
	require.NoError(t, err)

	assert.Equal(t, helper.CRSWGS84, layer.CRS)
	require.Len(t, layer.Regions, 2)
	// Numeric codes flatten to strings for comparison with user input.
	assert.Equal(t, "102", layer.Regions[0].Code)
	assert.Equal(t, "Southern", layer.Regions[0].Name)
	assert.Equal(t, "101", layer.Regions[1].Code)
	assert.NotNil(t, layer.FindByCode("101"))
	assert.Nil(t, layer.FindByCode("999"))
}

func TestLocalRepository_RegionLayer_BadType(t *testing.T) {
	repo := NewLocalLayerRepository(t.TempDir())
	_, err := repo.RegionLayer(context.Background(), "karnataka", "AC wise")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown selection type")
}

func TestLocalRepository_RegionLayer_Missing(t *testing.T) {
	repo := NewLocalLayerRepository(t.TempDir())
	_, err := repo.RegionLayer(context.Background(), "karnataka", model.SelectionTypeAssembly)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrLayerNotFound))
}

func TestLocalRepository_BoothLayer(t *testing.T) {
	dir := t.TempDir()
	writeTestState(t, dir, "karnataka")

	repo := NewLocalLayerRepository(dir)
	layer, err := repo.BoothLayer(context.Background(), "karnataka")
	require.NoError(t, err)

	require.Len(t, layer.Booths, 2)
	first := layer.Booths[0]
	assert.Equal(t, "7", first.Code)
	assert.Equal(t, "Primary School", first.Name)
	assert.InDelta(t, 77.5, first.Longitude, 1e-9)
	assert.InDelta(t, 12.5, first.Latitude, 1e-9)
	assert.Equal(t, "3", first.Attributes["district"])

	// Second booth uses the lowercase schema variant.
	assert.Equal(t, "8", layer.Booths[1].Code)
	assert.Equal(t, "Community Hall", layer.Booths[1].Name)
}

func TestLocalRepository_BoothLayer_MercatorCRS(t *testing.T) {
	dir := t.TempDir()
	stateDir := filepath.Join(dir, "teststate")
	require.NoError(t, os.MkdirAll(stateDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(stateDir, "teststate.booth.geojson"), []byte(mercatorBoothGeoJSON), 0o644))

	repo := NewLocalLayerRepository(dir)
	layer, err := repo.BoothLayer(context.Background(), "teststate")
	require.NoError(t, err)

	assert.Equal(t, helper.CRSWebMercator, layer.CRS)
	require.Len(t, layer.Booths, 1)
	// Geographic coordinates are derived from the projected point.
	assert.InDelta(t, 77.6, layer.Booths[0].Longitude, 0.1)
	assert.InDelta(t, 12.5, layer.Booths[0].Latitude, 0.1)
}

func TestNormalizeCRS(t *testing.T) {
	assert.Equal(t, helper.CRSWGS84, normalizeCRS(""))
	assert.Equal(t, helper.CRSWGS84, normalizeCRS("urn:ogc:def:crs:OGC:1.3:CRS84"))
	assert.Equal(t, "EPSG:3857", normalizeCRS("urn:ogc:def:crs:EPSG::3857"))
	assert.Equal(t, "EPSG:4326", normalizeCRS("urn:ogc:def:crs:EPSG::4326"))
	assert.Equal(t, "ESRI:102024", normalizeCRS("ESRI:102024"))
}

func TestDecodeRegionLayer_NoCodeColumn(t *testing.T) {
	data := []byte(`{
	  "type": "FeatureCollection",
	  "features": [
	    {
	      "type": "Feature",
	      "properties": {"something": "else"},
	      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
	    }
	  ]
	}`)
	_, err := decodeRegionLayer(data, model.SelectionTypeAssembly)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognizable code column")
}
