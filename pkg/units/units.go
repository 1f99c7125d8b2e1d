// Package units handles scalar unit conversion between the host model's
// native centimeters and the exporter's target millimeters. Every host
// value crosses this boundary exactly once, at analyzer ingestion; all
// downstream geometry is millimeters.
package units

import "math"

// CMToMM is the fixed conversion factor from host centimeters to
// target millimeters.
const CMToMM = 10.0

// ToMM converts a host-native centimeter value to millimeters.
func ToMM(v float64) float64 {
	return v * CMToMM
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
