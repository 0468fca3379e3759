package service

import (
	"math"

	"BoothMap-App/internal/domain/model"
)

// AllocateClusters maps a requested per-region sample size to a cluster
// count: round(samples/25), floor 1. The 25:1 ratio is a fixed business
// rule; each cluster then contributes up to 2 booths.
func AllocateClusters(requestedSamples int) int {
	clusters := int(math.Round(float64(requestedSamples) / model.SamplesPerCluster))
	if clusters < 1 {
		clusters = 1
	}
	return clusters
}

// EvaluateCompleteness produces the verdict for a region: complete when
// the selection met the 2-per-cluster target for the originally requested
// cluster count. The reason names the precise cause and comes from the
// fixed enumeration in the model package.
func EvaluateCompleteness(selected, requestedClusters, effectiveClusters int) (bool, string) {
	if selected == requestedClusters*model.BoothsPerCluster {
		return true, model.ReasonNone
	}
	if effectiveClusters < requestedClusters {
		return false, model.ReasonClusterCountReduced
	}
	return false, model.ReasonInsufficientBooths
}

// BoothSamplingService runs the per-region pipeline: cluster allocation,
// spatial clustering, representative selection, completeness verdict.
// It is a pure function of its inputs and holds no state between calls.
type BoothSamplingService interface {
	Sample(booths []*model.Booth, requestedSamples int) *model.SelectionResult
}

type boothSamplingService struct {
	clusterer SpatialClusterer
	selector  RepresentativeSelector
}

// NewBoothSamplingService wires the pipeline from its two policies.
func NewBoothSamplingService(clusterer SpatialClusterer, selector RepresentativeSelector) BoothSamplingService {
	return &boothSamplingService{
		clusterer: clusterer,
		selector:  selector,
	}
}

// Sample partitions the valid booths of one region and selects the
// survey representatives. Booths are only ever dropped by containment
// validation upstream; here every booth receives a cluster id.
func (s *boothSamplingService) Sample(booths []*model.Booth, requestedSamples int) *model.SelectionResult {
	requestedClusters := AllocateClusters(requestedSamples)

	result := &model.SelectionResult{
		TotalBooths:       len(booths),
		RequestedSamples:  requestedSamples,
		RequestedClusters: requestedClusters,
	}
	if len(booths) == 0 {
		result.Reason = model.ReasonNoBoothsInBoundary
		return result
	}

	clusters := s.clusterer.Cluster(booths, requestedClusters)
	result.EffectiveClusters = len(clusters)

	for _, cluster := range clusters {
		for _, booth := range cluster.Members {
			result.ClusteredBooths = append(result.ClusteredBooths, model.ClusteredBooth{
				Booth:     booth,
				ClusterID: cluster.ID,
			})
		}
		result.ClusterCenters = append(result.ClusterCenters, model.ClusterCenter{
			ClusterID: cluster.ID,
			Longitude: cluster.Centroid.Lon(),
			Latitude:  cluster.Centroid.Lat(),
		})
		for _, booth := range s.selector.Select(cluster, model.BoothsPerCluster) {
			result.SelectedBooths = append(result.SelectedBooths, model.ClusteredBooth{
				Booth:     booth,
				ClusterID: cluster.ID,
			})
		}
	}

	result.IsComplete, result.Reason = EvaluateCompleteness(
		len(result.SelectedBooths), requestedClusters, result.EffectiveClusters)
	return result
}
