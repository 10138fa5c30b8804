package deadband

import "math"

// Apply zeroes input whose magnitude is below threshold.  Anything else comes
// back unchanged; the remaining range isn't rescaled.
func Apply(value, threshold float64) float64 {
	if math.Abs(value) < threshold {
		return 0
	}
	return value
}
