package onset

import "testing"

func TestEnergyODFImpulseThenSilence(t *testing.T) {
	odf := NewEnergyODF()

	impulse := make([]float64, odf.FrameSize())
	impulse[0] = 1.0
	silence := make([]float64, odf.FrameSize())

	v1, err := odf.ProcessFrame(impulse)
	if err != nil {
		t.Fatalf("ProcessFrame(impulse): %v", err)
	}
	if v1 != 1.0 {
		t.Fatalf("got %v, want 1.0", v1)
	}

	v2, err := odf.ProcessFrame(silence)
	if err != nil {
		t.Fatalf("ProcessFrame(silence): %v", err)
	}
	if v2 != 1.0 {
		t.Fatalf("got %v, want 1.0", v2)
	}
}

func TestEnergyODFProcessFrameRejectsShortBuffer(t *testing.T) {
	odf := NewEnergyODF()
	_, err := odf.ProcessFrame(make([]float64, odf.FrameSize()-1))
	if err == nil {
		t.Fatalf("expected error for short buffer")
	}
}

func TestEnergyODFResetReproducibility(t *testing.T) {
	odf := NewEnergyODF()
	signal := make([]float64, odf.FrameSize()*4)
	for i := range signal {
		signal[i] = float64(i%7) * 0.1
	}

	first, err := odf.Process(signal)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	odf.Reset()
	second, err := odf.Process(signal)
	if err != nil {
		t.Fatalf("Process after reset: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: %v != %v after reset", i, first[i], second[i])
		}
	}
}

func TestEnergyODFAllZeroSignalYieldsAllZeroODF(t *testing.T) {
	odf := NewEnergyODF()
	signal := make([]float64, odf.FrameSize()*3)

	out, err := odf.Process(signal)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("index %d: got %v, want 0 for silent input", i, v)
		}
	}
}
