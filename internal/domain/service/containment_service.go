package service

import (
	"fmt"

	"BoothMap-App/internal/domain/helper"
	"BoothMap-App/internal/domain/model"
)

// ContainmentValidator returns the booths that physically lie inside a
// region's boundary. Booths are the only thing ever reprojected; the
// boundary layer is authoritative for the working reference system.
type ContainmentValidator interface {
	ValidBooths(booths *model.BoothLayer, regions *model.RegionLayer, regionCode string) ([]*model.Booth, []string, error)
}

type containmentValidator struct{}

// NewContainmentValidator creates the default point-in-polygon validator.
func NewContainmentValidator() ContainmentValidator {
	return &containmentValidator{}
}

// ValidBooths filters the booth layer down to the points contained in the
// boundary of the region with the given code. An unknown code yields an
// empty result, not an error; upstream treats it as "no data".
//
// When either layer lacks reference metadata the test runs in raw
// coordinates and the condition is reported as a warning.
func (v *containmentValidator) ValidBooths(booths *model.BoothLayer, regions *model.RegionLayer, regionCode string) ([]*model.Booth, []string, error) {
	region := regions.FindByCode(regionCode)
	if region == nil {
		return nil, nil, nil
	}

	var warnings []string
	reproject := false
	switch {
	case booths.CRS == "" || regions.CRS == "":
		warnings = append(warnings, fmt.Sprintf(
			"coordinate reference missing (booths=%q, regions=%q); containment tested in raw coordinates",
			booths.CRS, regions.CRS))
	case booths.CRS != regions.CRS:
		reproject = true
	}

	var valid []*model.Booth
	for _, booth := range booths.Booths {
		pt := booth.Point
		if reproject {
			var err error
			pt, err = helper.ReprojectPoint(pt, booths.CRS, regions.CRS)
			if err != nil {
				return nil, warnings, fmt.Errorf("reprojecting booths into boundary reference: %w", err)
			}
		}
		if helper.ContainsPoint(region.Boundary, pt) {
			valid = append(valid, booth)
		}
	}
	return valid, warnings, nil
}
