package geo

// Footprint classes describe how spread out a conference is.
const (
	FootprintRegional      = "regional"
	FootprintMultiRegional = "multi_regional"
	FootprintNational      = "national"
)

// Distance thresholds for classification (miles from the geographic center).
const (
	regionalThreshold      = 400.0
	multiRegionalThreshold = 900.0
)

// ClassifyFootprint returns the footprint class for a conference given the
// average distance of its schools from their geographic center.
// Rules:
//   - regional: average distance <= 400mi
//   - multi_regional: average distance <= 900mi
//   - national: anything farther
func ClassifyFootprint(avgFromCenterMiles float64) string {
	switch {
	case avgFromCenterMiles <= regionalThreshold:
		return FootprintRegional
	case avgFromCenterMiles <= multiRegionalThreshold:
		return FootprintMultiRegional
	default:
		return FootprintNational
	}
}
