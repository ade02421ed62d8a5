package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds to cents, half away from zero (1.005 -> 1.01, -0.125 -> -0.13).
// The value goes through its shortest decimal representation first, so
// binary float noise does not flip a half-cent the wrong way.
// NaN and ±Inf are returned unchanged so an overflowing run keeps going.
func Round2(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// Finite reports whether every value is neither NaN nor ±Inf.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
