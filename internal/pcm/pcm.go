// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between integer PCM and floating point samples.
package pcm

const (
	maxInt16 = 32767.0
	int16Div = 32768.0
)

// Float32ToInt16 scales a sample in [-1, 1] to int16, clamping overflow.
func Float32ToInt16(x float32) int16 {
	return Float64ToInt16(float64(x))
}

// Float64ToInt16 scales a sample in [-1, 1] to int16, clamping overflow.
// NaN maps to 0.
func Float64ToInt16(x float64) int16 {
	switch {
	case x != x:
		return 0
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}
	return int16(x * maxInt16)
}

// Int16ToFloat32 scales an int16 sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / int16Div
}

// IntToFloat32 scales a signed integer sample of the given bit depth into
// [-1, 1). 8-bit samples are expected to be signed already.
func IntToFloat32(v, bitDepth int) float32 {
	return float32(float64(v) / FullScale(bitDepth))
}

// FullScale returns 2^(bitDepth-1), the magnitude of the most negative
// sample. Unknown depths are treated as 16-bit.
func FullScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return int16Div
	}
}

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x in
// [0, 1], where x=0 is y1 and x=1 is y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1
	return ((a0*x+a1)*x+a2)*x + a3
}
