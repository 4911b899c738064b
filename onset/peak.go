package onset

import (
	"fmt"
	"math"

	"github.com/modaldsp/onsetdetect/spectral"
)

// peakDistance computes a single frame's ODF contribution from the distance
// between each current peak and its tracked predecessor (nil if the peak is
// newly born this frame).
type peakDistance func(peak, prev *spectral.Peak) float64

// peakODF is the shared plumbing for the peak-tracking ODF family: extract
// peaks, track them across frames, and sum a variant-specific per-peak
// distance. UnmatchedPeaksODF and PeakAmpDifferenceODF differ only in
// distanceFn.
type peakODF struct {
	cfg       Config
	extractor *spectral.Extractor
	tracker   *spectral.Tracker

	maxPeaks         int
	peakThreshold    float64
	matchingInterval float64

	distanceFn peakDistance
}

func newPeakODF(distanceFn peakDistance) (*peakODF, error) {
	o := &peakODF{
		cfg:              NewDefaultConfig(),
		maxPeaks:         DefaultMaxPeaks,
		peakThreshold:    DefaultPeakThreshold,
		matchingInterval: DefaultMatchingInterval,
		distanceFn:       distanceFn,
	}
	if err := o.rebuild(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *peakODF) rebuild() error {
	extractor, err := spectral.NewExtractor(o.cfg.FrameSize, o.cfg.SamplingRate, o.maxPeaks, o.peakThreshold, o.matchingInterval)
	if err != nil {
		return fmt.Errorf("onset: peak ODF: %w", err)
	}
	o.extractor = extractor
	o.tracker = spectral.NewTracker(o.cfg.SamplingRate, o.matchingInterval)
	return nil
}

func (o *peakODF) ProcessFrame(signal []float64) (float64, error) {
	if len(signal) < o.cfg.FrameSize {
		return 0, fmt.Errorf("onset: peak ODF: signal shorter than frame size %d", o.cfg.FrameSize)
	}
	peaks, err := o.extractor.Extract(signal[:o.cfg.FrameSize])
	if err != nil {
		return 0, err
	}
	tracked := o.tracker.Track(peaks)

	var sum float64
	for _, p := range tracked {
		sum += o.distanceFn(p, p.Prev)
	}
	return sum, nil
}

func (o *peakODF) Process(signal []float64) ([]float64, error) {
	return runOffline(o.cfg.FrameSize, o.cfg.HopSize, signal, o.ProcessFrame)
}

func (o *peakODF) Reset() {
	o.tracker.Reset()
}

func (o *peakODF) SamplingRate() int { return o.cfg.SamplingRate }

// SetSamplingRate rebuilds the extractor and tracker so the new rate takes
// effect immediately: the extractor's Fundamental (sampling_rate/frame_size)
// is baked in at construction, and the tracker's tie-break distance is
// seeded from sampling rate too.
func (o *peakODF) SetSamplingRate(value int) {
	prev := o.cfg.SamplingRate
	o.cfg.SamplingRate = value
	if err := o.rebuild(); err != nil {
		o.cfg.SamplingRate = prev
	}
}

func (o *peakODF) FrameSize() int { return o.cfg.FrameSize }
func (o *peakODF) HopSize() int   { return o.cfg.HopSize }

func (o *peakODF) SetFrameSize(value int) error {
	next := o.cfg
	next.FrameSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	prevCfg, prevExtractor, prevTracker := o.cfg, o.extractor, o.tracker
	o.cfg = next
	if err := o.rebuild(); err != nil {
		o.cfg, o.extractor, o.tracker = prevCfg, prevExtractor, prevTracker
		return err
	}
	return nil
}

func (o *peakODF) SetHopSize(value int) error {
	next := o.cfg
	next.HopSize = value
	if err := next.Validate(); err != nil {
		return err
	}
	o.cfg = next
	return nil
}

func (o *peakODF) MaxPeaks() int { return o.maxPeaks }

func (o *peakODF) SetMaxPeaks(value int) error {
	if value < 1 {
		return fmt.Errorf("onset: peak ODF: max peaks must be >= 1, got %d", value)
	}
	prev := o.maxPeaks
	o.maxPeaks = value
	if err := o.rebuild(); err != nil {
		o.maxPeaks = prev
		return err
	}
	return nil
}

func (o *peakODF) PeakThreshold() float64 { return o.peakThreshold }

func (o *peakODF) SetPeakThreshold(value float64) error {
	if value < 0 {
		return fmt.Errorf("onset: peak ODF: peak threshold must be >= 0, got %g", value)
	}
	prev := o.peakThreshold
	o.peakThreshold = value
	if err := o.rebuild(); err != nil {
		o.peakThreshold = prev
		return err
	}
	return nil
}

func (o *peakODF) MatchingInterval() float64 { return o.matchingInterval }

func (o *peakODF) SetMatchingInterval(value float64) error {
	if value <= 0 {
		return fmt.Errorf("onset: peak ODF: matching interval must be > 0, got %g", value)
	}
	prev := o.matchingInterval
	o.matchingInterval = value
	if err := o.rebuild(); err != nil {
		o.matchingInterval = prev
		return err
	}
	return nil
}

// UnmatchedPeaksODF sums the amplitude of every peak born this frame
// (no predecessor) and contributes nothing for peaks that continue a
// tracked partial.
type UnmatchedPeaksODF struct {
	*peakODF
}

// NewUnmatchedPeaksODF constructs an UnmatchedPeaksODF with the package
// defaults.
func NewUnmatchedPeaksODF() (*UnmatchedPeaksODF, error) {
	base, err := newPeakODF(unmatchedPeaksDistance)
	if err != nil {
		return nil, err
	}
	return &UnmatchedPeaksODF{peakODF: base}, nil
}

func unmatchedPeaksDistance(peak, prev *spectral.Peak) float64 {
	if prev == nil {
		return peak.Amplitude
	}
	return 0.0
}

// PeakAmpDifferenceODF sums the absolute amplitude difference between each
// tracked peak and its predecessor, or the full amplitude for peaks born
// this frame.
type PeakAmpDifferenceODF struct {
	*peakODF
}

// NewPeakAmpDifferenceODF constructs a PeakAmpDifferenceODF with the package
// defaults.
func NewPeakAmpDifferenceODF() (*PeakAmpDifferenceODF, error) {
	base, err := newPeakODF(peakAmpDifferenceDistance)
	if err != nil {
		return nil, err
	}
	return &PeakAmpDifferenceODF{peakODF: base}, nil
}

func peakAmpDifferenceDistance(peak, prev *spectral.Peak) float64 {
	if prev == nil {
		return peak.Amplitude
	}
	return math.Abs(peak.Amplitude - prev.Amplitude)
}
