// Package dsp provides the low-level numeric building blocks shared by the
// onset detection functions: windowing and Burg-method linear prediction.
package dsp

import "math"

// Hann multiplies window in place by a Hann envelope. Callers that want a
// pure Hann window should fill window with 1.0 first; callers composing
// several envelopes can multiply this on top of an existing window.
func Hann(window []float64) {
	n := len(window)
	if n < 2 {
		return
	}
	denom := float64(n - 1)
	for i := range window {
		window[i] *= 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/denom))
	}
}
