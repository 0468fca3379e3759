package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"BoothMap-App/internal/domain/helper"
	"BoothMap-App/internal/domain/model"
)

// layerCRS mirrors the legacy GeoJSON crs member. RFC 7946 dropped it,
// so an absent member means EPSG:4326; shapefile conversions still emit
// it when the source was projected.
type layerCRS struct {
	CRS struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

func extractCRS(data []byte) string {
	var doc layerCRS
	if err := json.Unmarshal(data, &doc); err != nil {
		return helper.CRSWGS84
	}
	return normalizeCRS(doc.CRS.Properties.Name)
}

func normalizeCRS(name string) string {
	switch {
	case name == "":
		return helper.CRSWGS84
	case strings.EqualFold(name, "urn:ogc:def:crs:OGC:1.3:CRS84"):
		return helper.CRSWGS84
	case strings.HasPrefix(name, "urn:ogc:def:crs:EPSG::"):
		return "EPSG:" + strings.TrimPrefix(name, "urn:ogc:def:crs:EPSG::")
	}
	return name
}

// codeAliasesFor returns the region code alias list for a selection type.
func codeAliasesFor(selectionType string) []string {
	if selectionType == model.SelectionTypeParliamentary {
		return helper.PCCodeAliases
	}
	return helper.ACCodeAliases
}

// decodeRegionLayer parses a GeoJSON feature collection into a typed
// region layer. The code column is required for correctness: when no
// alias resolves on any feature the whole load fails, since no region
// could ever be matched.
func decodeRegionLayer(data []byte, selectionType string) (*model.RegionLayer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing region layer GeoJSON: %w", err)
	}

	layer := &model.RegionLayer{CRS: extractCRS(data)}
	codeAliases := codeAliasesFor(selectionType)
	codeResolved := false
	for _, f := range fc.Features {
		props := stringProperties(f.Properties)
		code := helper.Value(props, codeAliases)
		if code == "" {
			code = helper.Value(props, helper.RegionCodeAliases)
		}
		if code != "" {
			codeResolved = true
		}
		layer.Regions = append(layer.Regions, &model.Region{
			Code:       code,
			Name:       helper.Value(props, helper.RegionNameAliases),
			Boundary:   f.Geometry,
			Properties: props,
		})
	}
	if len(layer.Regions) > 0 && !codeResolved {
		return nil, fmt.Errorf("region layer has no recognizable code column (tried %v)", codeAliases)
	}
	return layer, nil
}

// decodeBoothLayer parses a GeoJSON feature collection into a booth
// layer and derives geographic latitude/longitude for every point.
func decodeBoothLayer(data []byte) (*model.BoothLayer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing booth layer GeoJSON: %w", err)
	}

	layer := &model.BoothLayer{CRS: extractCRS(data)}
	for _, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		props := stringProperties(f.Properties)
		layer.Booths = append(layer.Booths, &model.Booth{
			Point:      point,
			Code:       helper.Value(props, helper.BoothCodeAliases),
			Name:       helper.Value(props, helper.BoothNameAliases),
			Attributes: props,
		})
	}
	if err := deriveGeographic(layer); err != nil {
		return nil, err
	}
	return layer, nil
}

// deriveGeographic fills Latitude/Longitude in EPSG:4326 for every booth.
// A layer without reference metadata is taken as already geographic; the
// containment validator flags that condition separately.
func deriveGeographic(layer *model.BoothLayer) error {
	for _, b := range layer.Booths {
		pt := b.Point
		if layer.CRS != "" && layer.CRS != helper.CRSWGS84 {
			var err error
			pt, err = helper.ReprojectPoint(pt, layer.CRS, helper.CRSWGS84)
			if err != nil {
				return fmt.Errorf("deriving geographic coordinates: %w", err)
			}
		}
		b.Longitude = pt.Lon()
		b.Latitude = pt.Lat()
	}
	return nil
}

// stringProperties flattens GeoJSON properties to the string attribute
// map the schema resolver works on.
func stringProperties(props geojson.Properties) map[string]string {
	attrs := make(map[string]string, len(props))
	for k, v := range props {
		attrs[k] = propertyString(v)
	}
	return attrs
}

func propertyString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return fmt.Sprintf("%v", v)
}
