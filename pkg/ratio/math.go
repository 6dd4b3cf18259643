// Package ratio provides division-safe share and proportion helpers.
package ratio

import "math"

// Share returns part/total, or 0 when total is zero or the result would not
// be a finite number.
func Share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	s := part / total
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}

// Shortfall returns how far have falls below want as a fraction of want.
// Meeting or exceeding want yields 0; a zero want yields 0.
func Shortfall(have, want float64) float64 {
	if want <= 0 || have >= want {
		return 0
	}
	return Clamp(Share(want-have, want))
}

// Clamp ensures a proportion is in the valid range [0, 1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Allocate splits total into integer parts proportional to weights so the
// parts sum exactly to total. Leftover units go to the parts with the largest
// fractional remainders; zero-weight parts always receive zero.
func Allocate(total int64, weights []float64) []int64 {
	parts := make([]int64, len(weights))
	if total <= 0 || len(weights) == 0 {
		return parts
	}

	var weightSum float64
	for _, w := range weights {
		if w > 0 {
			weightSum += w
		}
	}
	if weightSum == 0 {
		return parts
	}

	remainders := make([]float64, len(weights))
	var assigned int64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		exact := float64(total) * w / weightSum
		parts[i] = int64(math.Floor(exact))
		remainders[i] = exact - float64(parts[i])
		assigned += parts[i]
	}

	for left := total - assigned; left > 0; left-- {
		best := -1
		for i, w := range weights {
			if w <= 0 {
				continue
			}
			if best == -1 || remainders[i] > remainders[best] {
				best = i
			}
		}
		parts[best]++
		remainders[best] = -1
	}
	return parts
}
