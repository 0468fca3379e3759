package helper

// Alias tables for the attribute schemas seen across source files.
// Order matters: resolution always takes the first alias present, so the
// result never depends on map iteration order. Shapefile-derived layers
// disagree on case and naming, hence the case-sensitive variants.
var (
	StateAliases        = []string{"state", "STATE", "st_name", "ST_NAME"}
	DistrictAliases     = []string{"district", "DISTRICT", "dist", "DIST"}
	DistrictNameAliases = []string{"district_n", "DISTRICT_N", "dist_name", "DIST_NAME"}
	PCAliases           = []string{"pc", "PC", "pc_no", "PC_NO"}
	PCNameAliases       = []string{"pc_name", "PC_NAME"}
	ACAliases           = []string{"ac", "AC", "ac_no", "AC_NO"}
	ACNameAliases       = []string{"ac_name", "AC_NAME"}
	BoothCodeAliases    = []string{"booth", "booth_no", "BOOTH_NO", "BOOTH"}
	BoothNameAliases    = []string{"booth_name", "BOOTH_NAME", "name", "NAME"}

	// Region layer columns. The code lists are selection-type specific;
	// the generic lists cover mixed layers when the type is not known.
	ACCodeAliases     = []string{"ac_no", "ac", "AC_NO", "AC"}
	PCCodeAliases     = []string{"pc_no", "pc", "PC_NO", "PC"}
	RegionCodeAliases = []string{"ac_no", "pc_no", "ac", "pc", "AC_NO", "PC_NO", "AC", "PC"}
	RegionNameAliases = []string{"ac_name", "pc_name", "name", "AC_NAME", "PC_NAME", "NAME"}
)

// ResolveField returns the first alias present in the attribute set.
// A miss is not an error; the caller reports the attribute as empty.
func ResolveField(attrs map[string]string, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if _, ok := attrs[alias]; ok {
			return alias, true
		}
	}
	return "", false
}

// Value returns the value of the first alias present, or "".
func Value(attrs map[string]string, aliases []string) string {
	if field, ok := ResolveField(attrs, aliases); ok {
		return attrs[field]
	}
	return ""
}
