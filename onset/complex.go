package onset

import (
	"fmt"
	"math"
)

// ComplexODF predicts each bin's complex value from the previous frame's
// magnitude and a constant phase-velocity extrapolation, and outputs the
// summed Euclidean distance between prediction and observation.
type ComplexODF struct {
	cfg         Config
	frame       *spectralFrame
	prevAmps    []float64
	prevPhases  []float64
	prevPhases2 []float64
}

// NewComplexODF constructs a ComplexODF with the package defaults.
func NewComplexODF() (*ComplexODF, error) {
	o := &ComplexODF{cfg: NewDefaultConfig()}
	if err := o.rebuild(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *ComplexODF) rebuild() error {
	frame, err := newSpectralFrame(o.cfg.FrameSize)
	if err != nil {
		return fmt.Errorf("onset: ComplexODF: %w", err)
	}
	o.frame = frame
	n := frame.numBins()
	o.prevAmps = make([]float64, n)
	o.prevPhases = make([]float64, n)
	o.prevPhases2 = make([]float64, n)
	return nil
}

// wrapPhase reduces phi into (-pi, pi] using phi - 2*pi*round(phi/(2*pi)),
// moving a result that lands on -pi up to pi.
func wrapPhase(phi float64) float64 {
	w := phi - 2*math.Pi*math.Round(phi/(2*math.Pi))
	if w <= -math.Pi {
		w += 2 * math.Pi
	}
	return w
}

func (o *ComplexODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: ComplexODF.ProcessFrame: signal shorter than frame size %d", o.cfg.FrameSize)
	}
	if err := o.frame.transform(signal[:o.cfg.FrameSize]); err != nil {
		return 0, err
	}

	var sum float64
	for bin, c := range o.frame.fftOut {
		phaseHat := wrapPhase(2.0*o.prevPhases[bin] - o.prevPhases2[bin])
		predRe := o.prevAmps[bin] * math.Cos(phaseHat)
		predIm := o.prevAmps[bin] * math.Sin(phaseHat)

		dRe := predRe - real(c)
		dIm := predIm - imag(c)
		sum += math.Hypot(dRe, dIm)

		o.prevAmps[bin] = math.Hypot(real(c), imag(c))
		o.prevPhases2[bin] = o.prevPhases[bin]
		o.prevPhases[bin] = math.Atan2(imag(c), real(c))
	}
	return sum, nil
}

func (o *ComplexODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *ComplexODF) Reset() {
	for i := range o.prevAmps {
		o.prevAmps[i] = 0
		o.prevPhases[i] = 0
		o.prevPhases2[i] = 0
	}
}

func (o *ComplexODF) SamplingRate() int         { return o.cfg.SamplingRate }
func (o *ComplexODF) SetSamplingRate(value int) { o.cfg.SamplingRate = value }
func (o *ComplexODF) FrameSize() int            { return o.cfg.FrameSize }
func (o *ComplexODF) HopSize() int              { return o.cfg.HopSize }

func (o *ComplexODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	prevCfg, prevFrame, prevAmps, prevPhases, prevPhases2 := o.cfg, o.frame, o.prevAmps, o.prevPhases, o.prevPhases2
	o.cfg = next
	if err := o.rebuild(); err != nil {
		o.cfg, o.frame, o.prevAmps, o.prevPhases, o.prevPhases2 = prevCfg, prevFrame, prevAmps, prevPhases, prevPhases2
		return err
	}
	return nil
}

func (o *ComplexODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}
