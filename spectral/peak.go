package spectral

import (
	"fmt"
	"math"
	"sort"

	"github.com/modaldsp/onsetdetect/dsp"
)

// Peak is a single spectral peak extracted from one frame. Prev/Next are
// cross-frame partial-tracking links maintained by Tracker; a Peak must not
// be referenced once the frame that owns it has been dropped by the
// tracker.
type Peak struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	Bin       int
	Prev      *Peak
	Next      *Peak
}

// PeakList is a frame's peaks, sorted by ascending frequency after
// extraction. The tracker reads and writes only the Prev/Next links across
// lists; it never reorders a list.
type PeakList []*Peak

// Extractor finds spectral peaks in successive frames of the same size,
// reusing its window, FFT plan and scratch buffers across calls.
type Extractor struct {
	plan   *Plan
	window []float64
	fftIn  []float64
	fftOut []complex128

	MaxPeaks         int
	PeakThreshold    float64
	Fundamental      float64
	MatchingInterval float64
}

// NewExtractor builds an Extractor for frameSize, with fundamental bin
// spacing sampleRate/frameSize.
func NewExtractor(frameSize int, sampleRate int, maxPeaks int, peakThreshold float64, matchingInterval float64) (*Extractor, error) {
	plan, err := GetPlan(frameSize)
	if err != nil {
		return nil, fmt.Errorf("spectral: new extractor: %w", err)
	}
	window := make([]float64, frameSize)
	for i := range window {
		window[i] = 1.0
	}
	dsp.Hann(window)

	return &Extractor{
		plan:             plan,
		window:           window,
		fftIn:            make([]float64, frameSize),
		fftOut:           make([]complex128, plan.NumBins()),
		MaxPeaks:         maxPeaks,
		PeakThreshold:    peakThreshold,
		Fundamental:      float64(sampleRate) / float64(frameSize),
		MatchingInterval: matchingInterval,
	}, nil
}

// Extract runs the FFT on signal (length == frame size) and returns the
// peaks found, sorted by ascending frequency and capped at MaxPeaks.
func (e *Extractor) Extract(signal []float64) (PeakList, error) {
	if len(signal) != len(e.fftIn) {
		return nil, fmt.Errorf("spectral: extract: signal length %d != frame size %d", len(signal), len(e.fftIn))
	}
	copy(e.fftIn, signal)
	for i := range e.fftIn {
		e.fftIn[i] *= e.window[i]
	}
	if err := e.plan.Forward(e.fftOut, e.fftIn); err != nil {
		return nil, fmt.Errorf("spectral: extract: %w", err)
	}

	numBins := len(e.fftOut)
	mag := func(k int) float64 {
		c := e.fftOut[k]
		return math.Hypot(real(c), imag(c))
	}

	prevAmp := mag(0)
	curAmp := mag(1)
	var peaks PeakList
	for i := 1; i < numBins-1; i++ {
		nextAmp := mag(i + 1)
		if curAmp > prevAmp && curAmp > nextAmp && curAmp > e.PeakThreshold {
			c := e.fftOut[i]
			peaks = append(peaks, &Peak{
				Amplitude: curAmp,
				Frequency: float64(i) * e.Fundamental,
				Phase:     math.Atan2(imag(c), real(c)),
				Bin:       i,
			})
		}
		prevAmp = curAmp
		curAmp = nextAmp
	}

	if len(peaks) > e.MaxPeaks {
		sort.SliceStable(peaks, func(a, b int) bool {
			return peaks[a].Amplitude > peaks[b].Amplitude
		})
		peaks = peaks[:e.MaxPeaks]
	}

	sort.SliceStable(peaks, func(a, b int) bool {
		return peaks[a].Frequency < peaks[b].Frequency
	})
	return peaks, nil
}
