package service

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"BoothMap-App/internal/domain/model"
)

// RepresentativeSelector picks the survey representatives of one cluster.
// The policy is pluggable; the default is closest-to-centroid with a
// lexical booth-code tie-break.
type RepresentativeSelector interface {
	Select(cluster SpatialCluster, limit int) []*model.Booth
}

type centroidDistanceSelector struct{}

// NewCentroidDistanceSelector creates the default selection policy.
func NewCentroidDistanceSelector() RepresentativeSelector {
	return &centroidDistanceSelector{}
}

// Select returns up to limit booths nearest the cluster centroid by
// Euclidean distance in the working coordinate system. Coincident
// coordinates are broken by booth code, then by position, so the choice
// is deterministic. Clusters with fewer members than the limit yield all
// of them; booths are never borrowed from other clusters.
func (s *centroidDistanceSelector) Select(cluster SpatialCluster, limit int) []*model.Booth {
	if limit <= 0 || len(cluster.Members) == 0 {
		return nil
	}

	ranked := make([]*model.Booth, len(cluster.Members))
	copy(ranked, cluster.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		di := planar.Distance(orb.Point{ranked[i].Longitude, ranked[i].Latitude}, cluster.Centroid)
		dj := planar.Distance(orb.Point{ranked[j].Longitude, ranked[j].Latitude}, cluster.Centroid)
		if di != dj {
			return di < dj
		}
		if ranked[i].Code != ranked[j].Code {
			return ranked[i].Code < ranked[j].Code
		}
		if ranked[i].Longitude != ranked[j].Longitude {
			return ranked[i].Longitude < ranked[j].Longitude
		}
		return ranked[i].Latitude < ranked[j].Latitude
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}
