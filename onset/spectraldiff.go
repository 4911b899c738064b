package onset

import (
	"fmt"
	"math"
)

// SpectralDifferenceODF outputs the sum of per-bin magnitude differences
// between consecutive frames.
type SpectralDifferenceODF struct {
	cfg      Config
	frame    *spectralFrame
	prevAmps []float64
}

// NewSpectralDifferenceODF constructs a SpectralDifferenceODF with the package
// defaults.
func NewSpectralDifferenceODF() (*SpectralDifferenceODF, error) {
	o := &SpectralDifferenceODF{cfg: NewDefaultConfig()}
	if err := o.rebuild(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *SpectralDifferenceODF) rebuild() error {
	frame, err := newSpectralFrame(o.cfg.FrameSize)
	if err != nil {
		return fmt.Errorf("onset: SpectralDifferenceODF: %w", err)
	}
	o.frame = frame
	o.prevAmps = make([]float64, frame.numBins())
	return nil
}

func (o *SpectralDifferenceODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: SpectralDifferenceODF.ProcessFrame: signal shorter than frame size %d", o.cfg.FrameSize)
	}
	if err := o.frame.transform(signal[:o.cfg.FrameSize]); err != nil {
		return 0, err
	}

	var sum float64
	for bin, c := range o.frame.fftOut {
		amp := math.Hypot(real(c), imag(c))
		sum += math.Abs(o.prevAmps[bin] - amp)
		o.prevAmps[bin] = amp
	}
	return sum, nil
}

func (o *SpectralDifferenceODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *SpectralDifferenceODF) Reset() {
	for i := range o.prevAmps {
		o.prevAmps[i] = 0
	}
}

func (o *SpectralDifferenceODF) SamplingRate() int         { return o.cfg.SamplingRate }
func (o *SpectralDifferenceODF) SetSamplingRate(value int) { o.cfg.SamplingRate = value }
func (o *SpectralDifferenceODF) FrameSize() int            { return o.cfg.FrameSize }
func (o *SpectralDifferenceODF) HopSize() int              { return o.cfg.HopSize }

func (o *SpectralDifferenceODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	prevCfg, prevFrame, prevAmps := o.cfg, o.frame, o.prevAmps
	o.cfg = next
	if err := o.rebuild(); err != nil {
		o.cfg, o.frame, o.prevAmps = prevCfg, prevFrame, prevAmps
		return err
	}
	return nil
}

func (o *SpectralDifferenceODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}
