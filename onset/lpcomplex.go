package onset

import (
	"fmt"
	"math"

	"github.com/modaldsp/onsetdetect/dsp"
)

// LPComplexODF is the linear-prediction analogue of ComplexODF: each bin's
// Euclidean distance to its previous complex value is fitted with its own
// Burg model, and the output is the summed absolute prediction error of
// that distance.
type LPComplexODF struct {
	cfg       Config
	order     int
	frame     *spectralFrame
	prevFrame []complex128
	distances [][]float64 // per-bin sliding history, length order
	coefs     []float64
}

// NewLPComplexODF constructs an LPComplexODF with default order 5.
func NewLPComplexODF() (*LPComplexODF, error) {
	o := &LPComplexODF{cfg: NewDefaultConfig(), order: DefaultOrder}
	if err := o.rebuild(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *LPComplexODF) rebuild() error {
	frame, err := newSpectralFrame(o.cfg.FrameSize)
	if err != nil {
		return fmt.Errorf("onset: LPComplexODF: %w", err)
	}
	o.frame = frame
	n := frame.numBins()
	o.prevFrame = make([]complex128, n)
	o.distances = make([][]float64, n)
	for i := range o.distances {
		o.distances[i] = make([]float64, o.order)
	}
	o.coefs = make([]float64, o.order)
	return nil
}

func (o *LPComplexODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: LPComplexODF.ProcessFrame: signal shorter than frame size %d", o.cfg.FrameSize)
	}
	if err := o.frame.transform(signal[:o.cfg.FrameSize]); err != nil {
		return 0, err
	}

	var sum float64
	prediction := make([]float64, 1)
	for bin, c := range o.frame.fftOut {
		prev := o.prevFrame[bin]
		distance := math.Hypot(real(c)-real(prev), imag(c)-imag(prev))

		history := o.distances[bin]
		dsp.Burg(history, o.order, o.coefs)
		dsp.LinearPrediction(history, o.coefs, prediction)
		sum += math.Abs(distance - prediction[0])

		copy(history, history[1:])
		history[o.order-1] = distance

		o.prevFrame[bin] = c
	}
	return sum, nil
}

func (o *LPComplexODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *LPComplexODF) Reset() {
	for bin := range o.distances {
		o.prevFrame[bin] = 0
		for i := range o.distances[bin] {
			o.distances[bin][i] = 0
		}
	}
}

func (o *LPComplexODF) SamplingRate() int         { return o.cfg.SamplingRate }
func (o *LPComplexODF) SetSamplingRate(value int) { o.cfg.SamplingRate = value }
func (o *LPComplexODF) FrameSize() int            { return o.cfg.FrameSize }
func (o *LPComplexODF) HopSize() int              { return o.cfg.HopSize }

func (o *LPComplexODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	prevCfg, prevFrame, prevPrevFrame, prevDistances, prevCoefs := o.cfg, o.frame, o.prevFrame, o.distances, o.coefs
	o.cfg = next
	if err := o.rebuild(); err != nil {
		o.cfg, o.frame, o.prevFrame, o.distances, o.coefs = prevCfg, prevFrame, prevPrevFrame, prevDistances, prevCoefs
		return err
	}
	return nil
}

func (o *LPComplexODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}

func (o *LPComplexODF) Order() int { return o.order }

func (o *LPComplexODF) SetOrder(value int) error {
	if value < 1 {
		return fmt.Errorf("onset: LPComplexODF.SetOrder: order must be >= 1, got %d", value)
	}
	prevOrder := o.order
	o.order = value
	if err := o.rebuild(); err != nil {
		o.order = prevOrder
		return err
	}
	return nil
}
