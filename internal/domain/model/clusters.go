package model

// ClusteredBooth annotates a booth with the id of the spatial cluster
// it was assigned to. Cluster ids are stable only within one region run.
type ClusteredBooth struct {
	*Booth
	ClusterID int `json:"cluster"`
}

// ClusterCenter is the arithmetic mean of a cluster's member coordinates,
// expressed in EPSG:4326.
type ClusterCenter struct {
	ClusterID int     `json:"cluster"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
