package service

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"BoothMap-App/internal/domain/model"
)

// SpatialCluster is one geographic group of booths with its centroid.
// Centroids are in the working coordinate system (EPSG:4326 lon/lat).
type SpatialCluster struct {
	ID       int
	Centroid orb.Point
	Members  []*model.Booth
}

// SpatialClusterer partitions booths into at most k spatial clusters.
// Every booth is assigned to exactly one cluster; the clusterer never
// drops points. Repeated runs on the same booths and k produce identical
// assignments, which field-survey handoff depends on.
type SpatialClusterer interface {
	Cluster(booths []*model.Booth, k int) []SpatialCluster
}

type kmeansClusterer struct {
	maxIterations int
}

// NewKMeansClusterer creates the default iterative centroid clusterer.
func NewKMeansClusterer() SpatialClusterer {
	return &kmeansClusterer{maxIterations: 100}
}

// Cluster runs deterministic k-means over the booth coordinates.
// Initial centroids are spread evenly over a canonically ordered copy of
// the input, so the outcome does not depend on load order. If there are
// fewer booths than k, or a centroid ends up with no members, the empty
// clusters are dropped and ids compacted to 0..n-1.
func (c *kmeansClusterer) Cluster(booths []*model.Booth, k int) []SpatialCluster {
	if len(booths) == 0 || k < 1 {
		return nil
	}

	ordered := make([]*model.Booth, len(booths))
	copy(ordered, booths)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Code != ordered[j].Code {
			return ordered[i].Code < ordered[j].Code
		}
		if ordered[i].Longitude != ordered[j].Longitude {
			return ordered[i].Longitude < ordered[j].Longitude
		}
		return ordered[i].Latitude < ordered[j].Latitude
	})

	if k > len(ordered) {
		k = len(ordered)
	}

	points := make([]orb.Point, len(ordered))
	for i, b := range ordered {
		points[i] = orb.Point{b.Longitude, b.Latitude}
	}

	centroids := make([]orb.Point, k)
	for i := 0; i < k; i++ {
		centroids[i] = points[i*len(points)/k]
	}

	assignments := make([]int, len(points))
	for iter := 0; iter < c.maxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([]orb.Point, k)
		counts := make([]int, k)
		for i, p := range points {
			a := assignments[i]
			sums[a][0] += p[0]
			sums[a][1] += p[1]
			counts[a]++
		}
		for j := 0; j < k; j++ {
			// A centroid with no members keeps its position; it may
			// attract points again on a later iteration.
			if counts[j] > 0 {
				centroids[j] = orb.Point{sums[j][0] / float64(counts[j]), sums[j][1] / float64(counts[j])}
			}
		}
	}

	members := make([][]*model.Booth, k)
	for i, b := range ordered {
		a := assignments[i]
		members[a] = append(members[a], b)
	}

	var clusters []SpatialCluster
	for j := 0; j < k; j++ {
		if len(members[j]) == 0 {
			continue
		}
		clusters = append(clusters, SpatialCluster{
			ID:       len(clusters),
			Centroid: meanPoint(members[j]),
			Members:  members[j],
		})
	}
	return clusters
}

func nearestCentroid(p orb.Point, centroids []orb.Point) int {
	best := 0
	bestDist := planar.DistanceSquared(p, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := planar.DistanceSquared(p, centroids[j]); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}

func meanPoint(booths []*model.Booth) orb.Point {
	var lon, lat float64
	for _, b := range booths {
		lon += b.Longitude
		lat += b.Latitude
	}
	n := float64(len(booths))
	return orb.Point{lon / n, lat / n}
}
