package onset

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/modaldsp/onsetdetect/dsp"
)

// LPEnergyODF predicts the next frame's energy from a Burg linear-prediction
// model fitted to the history of past frame energies, and outputs the
// absolute prediction error.
type LPEnergyODF struct {
	cfg        Config
	order      int
	prevValues []float64
	coefs      []float64
}

// NewLPEnergyODF constructs an LPEnergyODF with default order 5.
func NewLPEnergyODF() *LPEnergyODF {
	o := &LPEnergyODF{cfg: NewDefaultConfig(), order: DefaultOrder}
	o.rebuild()
	return o
}

func (o *LPEnergyODF) rebuild() {
	o.prevValues = make([]float64, o.order)
	o.coefs = make([]float64, o.order)
}

func (o *LPEnergyODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: LPEnergyODF.ProcessFrame: signal shorter than frame size %d", o.cfg.FrameSize)
	}

	var energy float64
	for i := 0; i < o.cfg.FrameSize; i++ {
		energy += signal[i] * signal[i]
	}
	energy = dspcore.FlushDenormals(energy)

	dsp.Burg(o.prevValues, o.order, o.coefs)
	prediction := make([]float64, 1)
	dsp.LinearPrediction(o.prevValues, o.coefs, prediction)

	odfValue := math.Abs(energy - prediction[0])

	copy(o.prevValues, o.prevValues[1:])
	o.prevValues[o.order-1] = energy
	return odfValue, nil
}

func (o *LPEnergyODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *LPEnergyODF) Reset() {
	for i := range o.prevValues {
		o.prevValues[i] = 0
	}
}

func (o *LPEnergyODF) SamplingRate() int         { return o.cfg.SamplingRate }
func (o *LPEnergyODF) SetSamplingRate(value int) { o.cfg.SamplingRate = value }
func (o *LPEnergyODF) FrameSize() int            { return o.cfg.FrameSize }
func (o *LPEnergyODF) HopSize() int              { return o.cfg.HopSize }

func (o *LPEnergyODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	o.Reset()
	return nil
}

func (o *LPEnergyODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}

func (o *LPEnergyODF) Order() int { return o.order }

func (o *LPEnergyODF) SetOrder(value int) error {
	if value < 1 {
		return fmt.Errorf("onset: LPEnergyODF.SetOrder: order must be >= 1, got %d", value)
	}
	o.order = value
	o.rebuild()
	return nil
}
