package onset

import (
	"math"
	"testing"
)

func TestLPComplexODFValuesAreFiniteAndNonNegative(t *testing.T) {
	odf, err := NewLPComplexODF()
	if err != nil {
		t.Fatalf("NewLPComplexODF: %v", err)
	}
	signal := make([]float64, odf.FrameSize()*10)
	for i := range signal {
		signal[i] = math.Sin(float64(i) * 0.05)
	}

	out, err := odf.Process(signal)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			t.Fatalf("index %d: value %v not finite and non-negative", i, v)
		}
	}
}

func TestLPComplexODFSetOrderRejectsNonPositive(t *testing.T) {
	odf, err := NewLPComplexODF()
	if err != nil {
		t.Fatalf("NewLPComplexODF: %v", err)
	}
	if err := odf.SetOrder(0); err == nil {
		t.Fatalf("expected error for order 0")
	}
	if odf.Order() != DefaultOrder {
		t.Fatalf("order changed despite rejected update: %d", odf.Order())
	}
}

func TestLPComplexODFResetReproducibility(t *testing.T) {
	odf, err := NewLPComplexODF()
	if err != nil {
		t.Fatalf("NewLPComplexODF: %v", err)
	}
	signal := make([]float64, odf.FrameSize()*6)
	for i := range signal {
		signal[i] = math.Sin(float64(i)*0.07) + 0.3*math.Sin(float64(i)*0.21)
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
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: %v != %v after reset", i, first[i], second[i])
		}
	}
}
