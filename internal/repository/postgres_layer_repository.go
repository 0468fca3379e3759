package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"BoothMap-App/internal/domain/helper"
	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/domain/repository"
	"BoothMap-App/internal/infrastructure/database"
)

// PostgresLayerRepository loads layers from PostGIS tables. Boundaries
// and points are fetched as GeoJSON, attributes as JSONB, so the same
// schema resolution applies as for file-based layers.
type PostgresLayerRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresLayerRepository creates a repository over the given client.
func NewPostgresLayerRepository(client *database.PostgreSQLClient) repository.LayerRepository {
	return &PostgresLayerRepository{client: client}
}

// regionRow receives one row of the regions query before conversion.
type regionRow struct {
	Code     string
	Name     string
	Boundary string
	SRID     int
}

// ToRegion converts the scanned row into a model region.
func (row *regionRow) ToRegion() (*model.Region, error) {
	geom, err := geojson.UnmarshalGeometry([]byte(row.Boundary))
	if err != nil {
		return nil, fmt.Errorf("parsing boundary GeoJSON: %w", err)
	}
	return &model.Region{
		Code:     row.Code,
		Name:     row.Name,
		Boundary: geom.Geometry(),
		Properties: map[string]string{
			"code": row.Code,
			"name": row.Name,
		},
	}, nil
}

// boothRow receives one row of the booths query before conversion.
type boothRow struct {
	Attributes string
	Location   string
	SRID       int
}

// ToBooth converts the scanned row into a model booth.
func (row *boothRow) ToBooth() (*model.Booth, error) {
	geom, err := geojson.UnmarshalGeometry([]byte(row.Location))
	if err != nil {
		return nil, fmt.Errorf("parsing booth location GeoJSON: %w", err)
	}
	point, ok := geom.Geometry().(orb.Point)
	if !ok {
		return nil, fmt.Errorf("booth location is %T, want point", geom.Geometry())
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(row.Attributes), &raw); err != nil {
		return nil, fmt.Errorf("parsing booth attributes JSONB: %w", err)
	}
	attrs := make(map[string]string, len(raw))
	for k, v := range raw {
		attrs[k] = propertyString(v)
	}

	return &model.Booth{
		Point:      point,
		Code:       helper.Value(attrs, helper.BoothCodeAliases),
		Name:       helper.Value(attrs, helper.BoothNameAliases),
		Attributes: attrs,
	}, nil
}

// ListStates returns the distinct states present in the booths table.
func (r *PostgresLayerRepository) ListStates(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT state FROM booths ORDER BY state`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing states: %w", err)
	}
	defer rows.Close()

	var states []string
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("scanning state row: %w", err)
		}
		states = append(states, state)
	}
	return states, rows.Err()
}

// RegionLayer loads the boundary rows for one state and selection type.
func (r *PostgresLayerRepository) RegionLayer(ctx context.Context, state, selectionType string) (*model.RegionLayer, error) {
	if !model.IsSelectionType(selectionType) {
		return nil, fmt.Errorf("unknown selection type %q", selectionType)
	}

	query := `SELECT code, name, ST_AsGeoJSON(boundary), COALESCE(ST_SRID(boundary), 0)
		FROM regions WHERE state = $1 AND kind = $2 ORDER BY code`

	rows, err := r.client.DB.QueryContext(ctx, query, state, selectionType)
	if err != nil {
		return nil, fmt.Errorf("loading %s regions for %s: %w", selectionType, state, err)
	}
	defer rows.Close()

	layer := &model.RegionLayer{}
	for rows.Next() {
		var row regionRow
		if err := rows.Scan(&row.Code, &row.Name, &row.Boundary, &row.SRID); err != nil {
			return nil, fmt.Errorf("scanning region row: %w", err)
		}
		region, err := row.ToRegion()
		if err != nil {
			return nil, err
		}
		layer.Regions = append(layer.Regions, region)
		// The layer reference system comes from the geometry SRID;
		// SRID 0 stays as "unknown" and is flagged downstream.
		if layer.CRS == "" && row.SRID != 0 {
			layer.CRS = fmt.Sprintf("EPSG:%d", row.SRID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(layer.Regions) == 0 {
		return nil, fmt.Errorf("%s regions for %s: %w", selectionType, state, repository.ErrLayerNotFound)
	}
	return layer, nil
}

// BoothLayer loads the booth rows for one state.
func (r *PostgresLayerRepository) BoothLayer(ctx context.Context, state string) (*model.BoothLayer, error) {
	query := `SELECT attributes, ST_AsGeoJSON(location), COALESCE(ST_SRID(location), 0)
		FROM booths WHERE state = $1`

	rows, err := r.client.DB.QueryContext(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("loading booths for %s: %w", state, err)
	}
	defer rows.Close()

	layer := &model.BoothLayer{}
	for rows.Next() {
		var row boothRow
		if err := rows.Scan(&row.Attributes, &row.Location, &row.SRID); err != nil {
			return nil, fmt.Errorf("scanning booth row: %w", err)
		}
		booth, err := row.ToBooth()
		if err != nil {
			return nil, err
		}
		layer.Booths = append(layer.Booths, booth)
		if layer.CRS == "" && row.SRID != 0 {
			layer.CRS = fmt.Sprintf("EPSG:%d", row.SRID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(layer.Booths) == 0 {
		return nil, fmt.Errorf("booths for %s: %w", state, repository.ErrLayerNotFound)
	}
	if err := deriveGeographic(layer); err != nil {
		return nil, err
	}
	return layer, nil
}
