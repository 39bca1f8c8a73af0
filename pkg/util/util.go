package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func MinVal[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func MaxVal[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// logistic function, saturates to 1 for large positive x
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
