// Package spectral provides the real-to-complex FFT adapter, spectral peak
// extraction, and McAulay-Quatieri partial tracking shared by the frequency
// domain onset detection functions.
package spectral

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
)

var planCache sync.Map // map[int]*Plan

// Plan is a cached real FFT plan for one frame size: num_bins = frameSize/2+1
// complex outputs from a real input of length frameSize. It prefers
// algo-fft's fast plan and falls back to the safe (always-available) plan.
type Plan struct {
	mu        sync.Mutex
	frameSize int
	numBins   int
	fast      *algofft.FastPlanReal64
	safe      *algofft.PlanRealT[float64, complex128]
}

// NumBins returns frameSize/2 + 1.
func (p *Plan) NumBins() int {
	return p.numBins
}

// Forward windows nothing itself: src is consumed as-is (the caller windows
// in place before calling) and dst receives NumBins() complex bins.
func (p *Plan) Forward(dst []complex128, src []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Forward(dst, src)
	}
	return errors.New("spectral: plan has no usable forward transform")
}

// GetPlan returns the cached plan for frameSize, building and caching a new
// one on first use. frameSize must be even and positive.
func GetPlan(frameSize int) (*Plan, error) {
	if frameSize <= 0 || frameSize%2 != 0 {
		return nil, fmt.Errorf("spectral: invalid frame size %d", frameSize)
	}
	if v, ok := planCache.Load(frameSize); ok {
		return v.(*Plan), nil
	}

	p := &Plan{frameSize: frameSize, numBins: frameSize/2 + 1}

	fast, err := algofft.NewFastPlanReal64(frameSize)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		// Ignore fast-plan setup errors and rely on the safe plan below.
	}

	safe, err := algofft.NewPlanReal64(frameSize)
	if err != nil {
		if p.fast == nil {
			return nil, fmt.Errorf("spectral: no FFT plan available for size %d: %w", frameSize, err)
		}
	} else {
		p.safe = safe
	}

	actual, _ := planCache.LoadOrStore(frameSize, p)
	return actual.(*Plan), nil
}
