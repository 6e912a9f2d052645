package pkg

import (
	"math"
	"strconv"
	"strings"
)

type SnapMode string

const (
	SnapNearest SnapMode = "nearest"
	SnapFloor   SnapMode = "floor"
	SnapCeil    SnapMode = "ceil"
)

// max decimals kept when deriving precision from a step size
const maxStepDecimals = 4

// snapEpsilon absorbs float noise in value/step before floor/ceil,
// e.g. 0.7/0.1 = 6.999999999999999
const snapEpsilon = 1e-9

// ParseSnapMode returns SnapNearest for empty or unknown input.
func ParseSnapMode(mode string) SnapMode {
	switch SnapMode(strings.ToLower(strings.TrimSpace(mode))) {
	case SnapFloor:
		return SnapFloor
	case SnapCeil:
		return SnapCeil
	default:
		return SnapNearest
	}
}

// RoundToGymHalf snaps a weight to the nearest loadable 0.0/0.5/1.0 kg using
// asymmetric break points on the first decimal of the remainder:
//
//	d <= 0.2       -> base
//	0.2 < d <= 0.7 -> base + 0.5
//	d > 0.7        -> base + 1
//
// Non-finite input yields 0. The sign of the input is preserved.
func RoundToGymHalf(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	sign := 1.0
	if value < 0 {
		sign = -1
		value = -value
	}

	base := math.Floor(value)
	// one decimal is enough, and it turns 0.29999999 into 0.3
	d := math.Round((value-base)*10) / 10

	var rounded float64
	switch {
	case d == 0:
		rounded = base
	case d == 0.5:
		rounded = base + 0.5
	case d <= 0.2:
		rounded = base
	case d < 0.5:
		rounded = base + 0.5
	case d <= 0.7:
		rounded = base + 0.5
	default:
		rounded = base + 1
	}

	if rounded == 0 {
		// avoid returning -0
		return 0
	}
	return sign * rounded
}

// SnapToStep snaps value to a multiple of step. The precision of the result is
// derived from the step (0.25 -> 2 decimals, 0.5 -> 1 decimal, 5 -> 0 decimals).
// Non-finite values yield 0; a non-finite or non-positive step returns the value as is.
// The result is always finite.
func SnapToStep(value, step float64, mode SnapMode) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return value
	}

	ratio := value / step
	if math.IsInf(ratio, 0) {
		// step too fine for the magnitude of value
		return value
	}

	var snapped float64
	switch mode {
	case SnapFloor:
		snapped = math.Floor(ratio+snapEpsilon) * step
	case SnapCeil:
		snapped = math.Ceil(ratio-snapEpsilon) * step
	default:
		snapped = math.Round(ratio) * step
	}

	if math.IsInf(snapped, 0) {
		return value
	}

	pow := math.Pow(10, float64(stepDecimals(step)))
	if scaled := snapped * pow; !math.IsInf(scaled, 0) {
		snapped = math.Round(scaled) / pow
	}
	if snapped == 0 {
		return 0
	}
	return snapped
}

func stepDecimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	decimals := len(s) - dot - 1
	if decimals > maxStepDecimals {
		return maxStepDecimals
	}
	return decimals
}

// FormatWeight renders a weight without trailing zeros, e.g. 17 -> "17", 16.5 -> "16.5".
func FormatWeight(weight float64) string {
	return strconv.FormatFloat(SnapToStep(weight, 0.01, SnapNearest), 'f', -1, 64)
}
