package sanitizer

import "github.com/shopspring/decimal"

// Numeric represents numeric types that support ordering.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clamp constrains value to [min, max].
func Clamp[T Numeric](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds half away from zero to the given number of decimal places
// using decimal arithmetic, so RoundTo(2.675, 2) is 2.68 rather than the
// 2.67 produced by scaling the binary float. Negative places round to tens,
// hundreds and so on.
func RoundTo(value float64, places int) float64 {
	f, _ := decimal.NewFromFloat(value).Round(int32(places)).Float64()
	return f
}

// Rounder returns a function rounding to places, for use with Compose.
func Rounder(places int) func(float64) float64 {
	return func(v float64) float64 { return RoundTo(v, places) }
}
