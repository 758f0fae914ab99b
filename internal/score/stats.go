package score

import "math"

// Epsilon is added to score values before geometric means so that zero cells
// do not collapse the product. Matches the threshold the map builder uses to
// drop keywords with no real presence.
const Epsilon = 1e-10

// GeoMean returns the geometric mean of the values. All inputs must be
// strictly positive; callers add Epsilon first.
func GeoMean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += math.Log(v)
	}
	return math.Exp(sum / float64(len(vals)))
}

// PopStdDev returns the population standard deviation of the values.
func PopStdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(vals)))
}

// Mean returns the arithmetic mean of the values.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
