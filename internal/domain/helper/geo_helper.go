package helper

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Reference systems the service can convert between. Source layers in
// practice carry either geographic coordinates or web mercator.
const (
	CRSWGS84       = "EPSG:4326"
	CRSWebMercator = "EPSG:3857"
)

// ReprojectPoint converts p from one reference system to another.
// Identical systems are a no-op. Unknown systems are an error, never a
// silent pass-through.
func ReprojectPoint(p orb.Point, from, to string) (orb.Point, error) {
	proj, err := projection(from, to)
	if err != nil {
		return orb.Point{}, err
	}
	if proj == nil {
		return p, nil
	}
	return proj(p), nil
}

// ReprojectGeometry converts a whole geometry between reference systems.
func ReprojectGeometry(g orb.Geometry, from, to string) (orb.Geometry, error) {
	proj, err := projection(from, to)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return g, nil
	}
	// project.Geometry mutates in place; work on a copy.
	return project.Geometry(orb.Clone(g), proj), nil
}

func projection(from, to string) (orb.Projection, error) {
	if from == to {
		return nil, nil
	}
	switch {
	case from == CRSWGS84 && to == CRSWebMercator:
		return project.WGS84.ToMercator, nil
	case from == CRSWebMercator && to == CRSWGS84:
		return project.Mercator.ToWGS84, nil
	}
	return nil, fmt.Errorf("unsupported reprojection %q -> %q", from, to)
}

// ContainsPoint reports whether the boundary geometry contains p.
// Boundaries are Polygon or MultiPolygon; anything else never contains.
func ContainsPoint(boundary orb.Geometry, p orb.Point) bool {
	switch g := boundary.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	}
	return false
}
