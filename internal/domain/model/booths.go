package model

import "github.com/paulmach/orb"

// Booth is a single polling location read from a booth layer.
// Point keeps the coordinates in the layer's own reference system;
// Latitude/Longitude are always derived in EPSG:4326 for reporting.
type Booth struct {
	Point      orb.Point         `json:"-"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Code       string            `json:"booth_code"`
	Name       string            `json:"booth_name"`
	Attributes map[string]string `json:"-"`
}

// BoothLayer is the full set of booths loaded for one state,
// together with the reference system the points are expressed in.
// CRS is empty when the source carried no reference metadata.
type BoothLayer struct {
	CRS    string
	Booths []*Booth
}
