package model

// SelectionType constants for the two kinds of region layers
const (
	SelectionTypeAssembly      = "assembly"
	SelectionTypeParliamentary = "parliamentary"
)

// Sampling business rule: 25 requested samples map to 1 spatial cluster,
// and each cluster contributes up to 2 representative booths.
const (
	SamplesPerCluster = 25
	BoothsPerCluster  = 2
)

// Status constants used in summary rows
const (
	StatusCompleted    = "Completed"
	StatusNotCompleted = "Not completed"
)

// Reason constants form the fixed enumeration surfaced to end users.
// The texts are stable; downstream consumers compare them verbatim.
const (
	ReasonNone                = ""
	ReasonNoBoothsInBoundary  = "No booths found within boundary"
	ReasonInsufficientBooths  = "Insufficient booths for requested sample size"
	ReasonClusterCountReduced = "Cluster count reduced to available booths"
	ReasonValidationFailed    = "Containment validation failed"
)

// IsSelectionType reports whether t is a known selection type.
func IsSelectionType(t string) bool {
	return t == SelectionTypeAssembly || t == SelectionTypeParliamentary
}

// StatusFor maps a completeness flag to its summary status text.
func StatusFor(complete bool) string {
	if complete {
		return StatusCompleted
	}
	return StatusNotCompleted
}
