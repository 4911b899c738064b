package dsp

import (
	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// Burg estimates order autoregressive coefficients from signal using Burg's
// recursion, minimizing forward and backward prediction error jointly.
// len(signal) must be >= order; len(coefs) must equal order. A
// zero-or-negative error denominator at any step yields mu=0 for that step
// rather than a division by zero.
func Burg(signal []float64, order int, coefs []float64) {
	n := len(signal)
	f := append([]float64(nil), signal...)
	b := append([]float64(nil), signal...)

	tempCoefs := make([]float64, order+1)
	reversedCoefs := make([]float64, order+1)
	tempCoefs[0] = 1.0

	floc := 0
	c := 0
	for k := 0; k < order; k++ {
		floc++

		var sum, fbSum float64
		for i := floc; i < n; i++ {
			sum += f[i]*f[i] + b[i-floc]*b[i-floc]
			fbSum += f[i] * b[i-floc]
		}
		sum = dspcore.FlushDenormals(sum)

		mu := 0.0
		if sum > 0 {
			mu = -2.0 * fbSum / sum
		}

		c++
		for i := 0; i <= c; i++ {
			reversedCoefs[i] = tempCoefs[c-i]
		}
		for i := 0; i <= c; i++ {
			tempCoefs[i] += mu * reversedCoefs[i]
		}

		for i := floc; i < n; i++ {
			fi := f[i]
			f[i] += mu * b[i-floc]
			b[i-floc] += mu * fi
		}
	}

	copy(coefs, tempCoefs[1:order+1])
}

// LinearPrediction produces len(predictions) future samples from the last
// len(coefs) samples of signal by the standard AR recursion. Predictions
// already emitted are used for lags shorter than the current step; the
// original signal is used for deeper lags.
func LinearPrediction(signal []float64, coefs []float64, predictions []float64) {
	numCoefs := len(coefs)
	signalSize := len(signal)

	for i := range predictions {
		var p float64
		for j := 0; j < i; j++ {
			p -= coefs[j] * predictions[i-1-j]
		}
		for j := i; j < numCoefs; j++ {
			p -= coefs[j] * signal[signalSize-1-j+i]
		}
		predictions[i] = p
	}
}
