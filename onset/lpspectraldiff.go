package onset

import (
	"fmt"
	"math"

	"github.com/modaldsp/onsetdetect/dsp"
)

// LPSpectralDifferenceODF is the linear-prediction analogue of
// SpectralDifferenceODF: each bin's magnitude history is fitted with its
// own Burg model (O(num_bins * order^2) per frame) and the output is the
// summed absolute prediction error.
type LPSpectralDifferenceODF struct {
	cfg      Config
	order    int
	frame    *spectralFrame
	prevAmps [][]float64 // per-bin sliding history, length order
	coefs    []float64   // scratch, reused across bins
}

// NewLPSpectralDifferenceODF constructs an LPSpectralDifferenceODF with the
// spec defaults (order 5).
func NewLPSpectralDifferenceODF() (*LPSpectralDifferenceODF, error) {
	o := &LPSpectralDifferenceODF{cfg: NewDefaultConfig(), order: DefaultOrder}
	if err := o.rebuild(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *LPSpectralDifferenceODF) rebuild() error {
	frame, err := newSpectralFrame(o.cfg.FrameSize)
	if err != nil {
		return fmt.Errorf("onset: LPSpectralDifferenceODF: %w", err)
	}
	o.frame = frame
	n := frame.numBins()
	o.prevAmps = make([][]float64, n)
	for i := range o.prevAmps {
		o.prevAmps[i] = make([]float64, o.order)
	}
	o.coefs = make([]float64, o.order)
	return nil
}

func (o *LPSpectralDifferenceODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: LPSpectralDifferenceODF.ProcessFrame: signal shorter than frame size %d", o.cfg.FrameSize)
	}
	if err := o.frame.transform(signal[:o.cfg.FrameSize]); err != nil {
		return 0, err
	}

	var sum float64
	prediction := make([]float64, 1)
	for bin, c := range o.frame.fftOut {
		amp := math.Hypot(real(c), imag(c))
		history := o.prevAmps[bin]

		dsp.Burg(history, o.order, o.coefs)
		dsp.LinearPrediction(history, o.coefs, prediction)
		sum += math.Abs(amp - prediction[0])

		copy(history, history[1:])
		history[o.order-1] = amp
	}
	return sum, nil
}

func (o *LPSpectralDifferenceODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *LPSpectralDifferenceODF) Reset() {
	for _, history := range o.prevAmps {
		for i := range history {
			history[i] = 0
		}
	}
}

func (o *LPSpectralDifferenceODF) SamplingRate() int         { return o.cfg.SamplingRate }
func (o *LPSpectralDifferenceODF) SetSamplingRate(value int) { o.cfg.SamplingRate = value }
func (o *LPSpectralDifferenceODF) FrameSize() int            { return o.cfg.FrameSize }
func (o *LPSpectralDifferenceODF) HopSize() int              { return o.cfg.HopSize }

func (o *LPSpectralDifferenceODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	prevCfg, prevFrame, prevAmps, prevCoefs := o.cfg, o.frame, o.prevAmps, o.coefs
	o.cfg = next
	if err := o.rebuild(); err != nil {
		o.cfg, o.frame, o.prevAmps, o.coefs = prevCfg, prevFrame, prevAmps, prevCoefs
		return err
	}
	return nil
}

func (o *LPSpectralDifferenceODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}

func (o *LPSpectralDifferenceODF) Order() int { return o.order }

func (o *LPSpectralDifferenceODF) SetOrder(value int) error {
	if value < 1 {
		return fmt.Errorf("onset: LPSpectralDifferenceODF.SetOrder: order must be >= 1, got %d", value)
	}
	prevOrder := o.order
	o.order = value
	if err := o.rebuild(); err != nil {
		o.order = prevOrder
		return err
	}
	return nil
}
