// Package preset loads onset detection function configuration from JSON
// files, applying overrides on top of an ODF's constructor defaults.
package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/modaldsp/onsetdetect/onset"
)

// File is the JSON schema for an ODF tuning preset. Every field is optional;
// absent fields leave the target ODF's current value untouched.
type File struct {
	SamplingRate     *int     `json:"sampling_rate"`
	FrameSize        *int     `json:"frame_size"`
	HopSize          *int     `json:"hop_size"`
	Order            *int     `json:"order"`
	MaxPeaks         *int     `json:"max_peaks"`
	PeakThreshold    *float64 `json:"peak_threshold"`
	MatchingInterval *float64 `json:"matching_interval"`
}

// LoadJSON reads path and applies it onto target via Apply.
func LoadJSON(path string, target onset.ODF) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("preset: load %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("preset: parse %s: %w", path, err)
	}
	return Apply(target, &f)
}

// Apply applies a parsed preset file onto target one field at a time:
// sampling rate and frame/hop geometry first, then the knobs that need a
// variant implementing OrderConfigurable, MaxPeaksConfigurable or
// PeakTunable. It stops at the first field that fails validation and
// returns its error; that field keeps its prior value, but fields applied
// before it keep their new values (target is not rolled back as a whole).
func Apply(target onset.ODF, f *File) error {
	if target == nil {
		return fmt.Errorf("preset: nil target")
	}
	if f == nil {
		return nil
	}

	if f.SamplingRate != nil {
		if *f.SamplingRate <= 0 {
			return fmt.Errorf("preset: sampling_rate must be > 0")
		}
		target.SetSamplingRate(*f.SamplingRate)
	}
	if f.FrameSize != nil {
		if err := target.SetFrameSize(*f.FrameSize); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}
	if f.HopSize != nil {
		if err := target.SetHopSize(*f.HopSize); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}

	if f.Order != nil {
		oc, ok := target.(onset.OrderConfigurable)
		if !ok {
			return fmt.Errorf("preset: order is not configurable on this ODF variant")
		}
		if err := oc.SetOrder(*f.Order); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}

	if f.MaxPeaks != nil {
		mc, ok := target.(onset.MaxPeaksConfigurable)
		if !ok {
			return fmt.Errorf("preset: max_peaks is not configurable on this ODF variant")
		}
		if err := mc.SetMaxPeaks(*f.MaxPeaks); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}

	if f.PeakThreshold != nil || f.MatchingInterval != nil {
		pt, ok := target.(onset.PeakTunable)
		if !ok {
			return fmt.Errorf("preset: peak_threshold/matching_interval require a peak-tracking ODF variant")
		}
		if f.PeakThreshold != nil {
			if err := pt.SetPeakThreshold(*f.PeakThreshold); err != nil {
				return fmt.Errorf("preset: %w", err)
			}
		}
		if f.MatchingInterval != nil {
			if err := pt.SetMatchingInterval(*f.MatchingInterval); err != nil {
				return fmt.Errorf("preset: %w", err)
			}
		}
	}

	return nil
}
