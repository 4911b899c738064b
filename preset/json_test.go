package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modaldsp/onsetdetect/onset"
)

func TestLoadJSONAppliesGeometryAndOrder(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{
  "sampling_rate": 48000,
  "frame_size": 1024,
  "hop_size": 512,
  "order": 8
}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	odf := onset.NewLPEnergyODF()
	if err := LoadJSON(presetPath, odf); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if odf.SamplingRate() != 48000 {
		t.Fatalf("sampling_rate mismatch: got=%d", odf.SamplingRate())
	}
	if odf.FrameSize() != 1024 {
		t.Fatalf("frame_size mismatch: got=%d", odf.FrameSize())
	}
	if odf.HopSize() != 512 {
		t.Fatalf("hop_size mismatch: got=%d", odf.HopSize())
	}
	if odf.Order() != 8 {
		t.Fatalf("order mismatch: got=%d", odf.Order())
	}
}

func TestLoadJSONAppliesPeakTuning(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{
  "max_peaks": 12,
  "peak_threshold": 0.2,
  "matching_interval": 150
}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	odf, err := onset.NewUnmatchedPeaksODF()
	if err != nil {
		t.Fatalf("NewUnmatchedPeaksODF: %v", err)
	}
	if err := LoadJSON(presetPath, odf); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if odf.MaxPeaks() != 12 {
		t.Fatalf("max_peaks mismatch: got=%d", odf.MaxPeaks())
	}
	if odf.PeakThreshold() != 0.2 {
		t.Fatalf("peak_threshold mismatch: got=%g", odf.PeakThreshold())
	}
	if odf.MatchingInterval() != 150 {
		t.Fatalf("matching_interval mismatch: got=%g", odf.MatchingInterval())
	}
}

func TestLoadJSONRejectsOrderOnUnsupportedVariant(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{"order": 3}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	odf := onset.NewEnergyODF()
	if err := LoadJSON(presetPath, odf); err == nil {
		t.Fatalf("expected error for order on EnergyODF")
	}
}

func TestLoadJSONRejectsInvalidFrameSize(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{"frame_size": 0}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	odf, err := onset.NewSpectralDifferenceODF()
	if err != nil {
		t.Fatalf("NewSpectralDifferenceODF: %v", err)
	}
	if err := LoadJSON(presetPath, odf); err == nil {
		t.Fatalf("expected error for zero frame_size")
	}
	if odf.FrameSize() != onset.DefaultFrameSize {
		t.Fatalf("frame_size should be unchanged on rejection: got=%d", odf.FrameSize())
	}
}
