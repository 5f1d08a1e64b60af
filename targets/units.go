package targets

import "math"

// Sodium is 39.34% of table salt by mass.
const sodiumShareOfSalt = 0.3934

// UnitOptions carries display preferences that callers used to keep in
// client storage.
type UnitOptions struct {
	SaltGramsPerTeaspoon float64
}

// DefaultUnitOptions uses a level teaspoon of fine salt.
var DefaultUnitOptions = UnitOptions{SaltGramsPerTeaspoon: 6}

// SaltTeaspoons converts a sodium target in mg into teaspoons of salt,
// rounded to two decimals. It returns 0 for a non-positive unit weight.
func SaltTeaspoons(sodiumMg float64, opts UnitOptions) float64 {
	if opts.SaltGramsPerTeaspoon <= 0 {
		return 0
	}
	tsp := sodiumMg / 1000 / sodiumShareOfSalt / opts.SaltGramsPerTeaspoon
	return math.Round(tsp*100) / 100
}
