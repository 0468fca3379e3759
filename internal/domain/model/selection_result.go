package model

// SelectionResult is the outcome of sampling one region. The core
// produces a fresh result per region; nothing is shared between regions.
type SelectionResult struct {
	TotalBooths       int              `json:"total_booths"`
	RequestedSamples  int              `json:"requested_samples"`
	RequestedClusters int              `json:"requested_clusters"`
	EffectiveClusters int              `json:"effective_clusters"`
	ClusteredBooths   []ClusteredBooth `json:"clustered_booths"`
	SelectedBooths    []ClusteredBooth `json:"selected_booths"`
	ClusterCenters    []ClusterCenter  `json:"cluster_centers"`
	IsComplete        bool             `json:"is_complete"`
	Reason            string           `json:"reason"`
}

// EmptyRegionResult is the fixed result for a region with no valid booths.
// Clustering is never invoked for these regions.
func EmptyRegionResult(requestedSamples, requestedClusters int) *SelectionResult {
	return &SelectionResult{
		TotalBooths:       0,
		RequestedSamples:  requestedSamples,
		RequestedClusters: requestedClusters,
		IsComplete:        false,
		Reason:            ReasonNoBoothsInBoundary,
	}
}
