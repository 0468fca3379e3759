package model

// RegionResult pairs a region's identity with its selection result.
type RegionResult struct {
	RegionCode string `json:"region_code"`
	RegionName string `json:"region_name"`
	*SelectionResult
}

// SummaryRow is one line of the per-region summary table.
type SummaryRow struct {
	RegionCode       string `json:"region_code"`
	RegionName       string `json:"region_name"`
	TotalBooths      int    `json:"total_booths"`
	SelectedBooths   int    `json:"selected_booths"`
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	SamplesRequested int    `json:"samples_requested"`
}

// SelectedBoothRecord is one exported row per selected booth, with the
// jurisdictional attributes resolved from the booth layer's schema.
type SelectedBoothRecord struct {
	State        string  `json:"state"`
	District     string  `json:"district"`
	DistrictName string  `json:"district_n"`
	PC           string  `json:"pc"`
	PCName       string  `json:"pc_name"`
	AC           string  `json:"ac"`
	ACName       string  `json:"ac_name"`
	Booth        string  `json:"booth"`
	BoothName    string  `json:"booth_name"`
	Cluster      int     `json:"cluster"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// BatchResult is everything produced by one processing run. It is owned
// by the orchestrating caller; the core keeps no state between runs.
type BatchResult struct {
	RunID             string                `json:"run_id"`
	State             string                `json:"state"`
	SelectionType     string                `json:"selection_type"`
	SamplesPerRegion  int                   `json:"samples_per_region"`
	ClustersPerRegion int                   `json:"clusters_per_region"`
	Warnings          []string              `json:"warnings,omitempty"`
	Regions           []*RegionResult       `json:"regions"`
	Summary           []SummaryRow          `json:"summary"`
	SelectedBooths    []SelectedBoothRecord `json:"selected_booths"`
	TotalRegions      int                   `json:"total_regions"`
	Completed         int                   `json:"completed"`
	TotalBooths       int                   `json:"total_booths"`
	TotalSelected     int                   `json:"total_selected"`
}

// FindRegion returns the result for the given region code, or nil.
func (b *BatchResult) FindRegion(code string) *RegionResult {
	for _, r := range b.Regions {
		if r.RegionCode == code {
			return r
		}
	}
	return nil
}
