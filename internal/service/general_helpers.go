package service

import "math"

// RoundingPrecision is the multiplier used when rounding monetary values to
// two decimal places.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places. Used when assembling
// API responses so monetary figures are consistently presented; the pure
// computation functions themselves stay unrounded.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundPtr rounds a nullable monetary value in place, preserving nil.
func roundPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	rounded := round(*value)
	return &rounded
}
