// Package signal classifies keywords into emergence categories per analysis
// period and reconciles the two map families into validated verdicts.
package signal

import "fmt"

// Category is one of the four quadrant labels or the two sentinels. The set
// is closed; free-form strings never enter the pipeline.
type Category string

const (
	StrongSignal Category = "Strong Signal"
	WeakSignal   Category = "Weak Signal"
	LatentSignal Category = "Latent Signal"
	WellKnown    Category = "Well-known but not strong"
	NotPresent   Category = "Not Present"
	NotValidated Category = "Not Validated"
)

// categories lists every valid Category value.
var categories = map[Category]struct{}{
	StrongSignal: {},
	WeakSignal:   {},
	LatentSignal: {},
	WellKnown:    {},
	NotPresent:   {},
	NotValidated: {},
}

// ParseCategory converts a stored label back into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categories[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// IsSignal reports whether the category is an actual quadrant label rather
// than one of the sentinels.
func (c Category) IsSignal() bool {
	switch c {
	case StrongSignal, WeakSignal, LatentSignal, WellKnown:
		return true
	}
	return false
}

// IsHighImpact reports whether the category marks an emerging concept.
func (c Category) IsHighImpact() bool {
	return c == WeakSignal || c == StrongSignal
}

// Classify places a point into a quadrant relative to the period medians.
// A value exactly at the median counts as above on both axes, so the
// median point itself is always a Strong Signal.
func Classify(x, medianX, y, medianY float64) Category {
	aboveX := x >= medianX
	aboveY := y >= medianY
	switch {
	case aboveX && aboveY:
		return StrongSignal
	case !aboveX && aboveY:
		return WeakSignal
	case !aboveX && !aboveY:
		return LatentSignal
	default: // aboveX && !aboveY
		return WellKnown
	}
}
