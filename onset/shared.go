package onset

import (
	"fmt"

	"github.com/modaldsp/onsetdetect/dsp"
	"github.com/modaldsp/onsetdetect/spectral"
)

// spectralFrame is the windowing+FFT plumbing shared by every ODF variant
// that consumes a magnitude/phase spectrum (SpectralDifferenceODF,
// ComplexODF, and the two LP spectral variants). It is composed into each
// variant rather than inherited, per the capability-based design.
type spectralFrame struct {
	plan   *spectral.Plan
	window []float64
	fftIn  []float64
	fftOut []complex128
}

func newSpectralFrame(frameSize int) (*spectralFrame, error) {
	plan, err := spectral.GetPlan(frameSize)
	if err != nil {
		return nil, fmt.Errorf("onset: spectral frame: %w", err)
	}
	window := make([]float64, frameSize)
	for i := range window {
		window[i] = 1.0
	}
	dsp.Hann(window)

	return &spectralFrame{
		plan:   plan,
		window: window,
		fftIn:  make([]float64, frameSize),
		fftOut: make([]complex128, plan.NumBins()),
	}, nil
}

// transform windows signal into the FFT input buffer and runs the forward
// transform, leaving the result in fftOut.
func (s *spectralFrame) transform(signal []float64) error {
	if len(signal) != len(s.fftIn) {
		return fmt.Errorf("onset: spectral frame: signal length %d != frame size %d", len(signal), len(s.fftIn))
	}
	copy(s.fftIn, signal)
	for i := range s.fftIn {
		s.fftIn[i] *= s.window[i]
	}
	return s.plan.Forward(s.fftOut, s.fftIn)
}

func (s *spectralFrame) numBins() int {
	return len(s.fftOut)
}
