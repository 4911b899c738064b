package onset

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// EnergyODF outputs the absolute difference in frame energy between
// consecutive frames.
type EnergyODF struct {
	cfg        Config
	prevEnergy float64
}

// NewEnergyODF constructs an EnergyODF with the package defaults.
func NewEnergyODF() *EnergyODF {
	return &EnergyODF{cfg: NewDefaultConfig()}
}

func (o *EnergyODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: EnergyODF.ProcessFrame: signal shorter than frame size %d", o.cfg.FrameSize)
	}

	var energy float64
	for i := 0; i < o.cfg.FrameSize; i++ {
		energy += signal[i] * signal[i]
	}
	energy = dspcore.FlushDenormals(energy)

	diff := math.Abs(energy - o.prevEnergy)
	o.prevEnergy = energy
	return diff, nil
}

func (o *EnergyODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *EnergyODF) Reset() {
	o.prevEnergy = 0
}

func (o *EnergyODF) SamplingRate() int         { return o.cfg.SamplingRate }
func (o *EnergyODF) SetSamplingRate(value int) { o.cfg.SamplingRate = value }
func (o *EnergyODF) FrameSize() int            { return o.cfg.FrameSize }
func (o *EnergyODF) HopSize() int              { return o.cfg.HopSize }

func (o *EnergyODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	o.Reset()
	return nil
}

func (o *EnergyODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}
