// Package sizing converts raw ring and bracelet measurements into standard sizes.
package sizing

import (
	"fmt"
	"math"
	"strings"
)

type Type string

const (
	Ring     Type = "ring"
	Bracelet Type = "bracelet"
)

const (
	ringBaseMm = 40.0
	ringStepMm = 0.8
)

// ParseType accepts "ring", "bracelet" and the legacy alias "bague".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ring", "bague":
		return Ring, nil
	case "bracelet":
		return Bracelet, nil
	default:
		return "", fmt.Errorf("sizing: unknown measurement type %q", s)
	}
}

// Standardize maps a millimetre value onto the standard size scale. Rings
// use a linear scale where 40mm is size 0 and each size adds 0.8mm. Bracelet
// values are returned unchanged. Inputs are not bounds checked.
func Standardize(t Type, valueMm float64) float64 {
	if t == Ring {
		return math.Round((valueMm - ringBaseMm) / ringStepMm)
	}
	return valueMm
}
