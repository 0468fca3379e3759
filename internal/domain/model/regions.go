package model

import "github.com/paulmach/orb"

// Region is one administrative constituency (AC or PC) with its boundary.
// Boundary is a Polygon or MultiPolygon in the layer's reference system.
type Region struct {
	Code       string
	Name       string
	Boundary   orb.Geometry
	Properties map[string]string
}

// RegionLayer holds all regions of one state for one selection type.
type RegionLayer struct {
	CRS     string
	Regions []*Region
}

// FindByCode returns the region whose code matches, or nil.
// Codes are compared as strings, matching the source data.
func (l *RegionLayer) FindByCode(code string) *Region {
	for _, r := range l.Regions {
		if r.Code == code {
			return r
		}
	}
	return nil
}

// RegionInfo is the code/name pair exposed by the region list endpoint.
type RegionInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
