// Command onsetdetect runs an onset detection function over a mono WAV file
// and prints the onsets the realtime picker fires on, replaying the
// offline ODF array sample by sample.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/modaldsp/onsetdetect/internal/audioio"
	"github.com/modaldsp/onsetdetect/onset"
	"github.com/modaldsp/onsetdetect/preset"
)

func main() {
	wavPath := flag.String("wav", "", "Input mono WAV file (required)")
	variant := flag.String("odf", "complex", "ODF variant: energy, spectraldiff, complex, lpenergy, lpspectraldiff, lpcomplex, unmatched, peakampdiff")
	presetPath := flag.String("preset", "", "Optional preset JSON to apply before processing")
	frameSize := flag.Int("frame-size", onset.DefaultFrameSize, "Frame size in samples")
	hopSize := flag.Int("hop-size", onset.DefaultHopSize, "Hop size in samples")
	flag.Parse()

	if *wavPath == "" {
		fmt.Fprintln(os.Stderr, "onsetdetect: -wav is required")
		os.Exit(1)
	}

	signal, sampleRate, err := audioio.ReadWAVMono(*wavPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "onsetdetect: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d samples @ %d Hz from %s\n", len(signal), sampleRate, *wavPath)

	odf, err := newODF(*variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "onsetdetect: %v\n", err)
		os.Exit(1)
	}
	odf.SetSamplingRate(sampleRate)
	if err := odf.SetFrameSize(*frameSize); err != nil {
		fmt.Fprintf(os.Stderr, "onsetdetect: %v\n", err)
		os.Exit(1)
	}
	if err := odf.SetHopSize(*hopSize); err != nil {
		fmt.Fprintf(os.Stderr, "onsetdetect: %v\n", err)
		os.Exit(1)
	}

	if *presetPath != "" {
		if err := preset.LoadJSON(*presetPath, odf); err != nil {
			fmt.Fprintf(os.Stderr, "onsetdetect: %v\n", err)
			os.Exit(1)
		}
	}

	values, err := odf.Process(signal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "onsetdetect: %v\n", err)
		os.Exit(1)
	}

	picker := onset.NewRealtimePicker()
	hop := odf.HopSize()
	onsetCount := 0
	for i, v := range values {
		if v > picker.MaxODFValue {
			picker.MaxODFValue = v
		}
		if picker.IsOnset(v) {
			sample := (i - 1) * hop
			fmt.Printf("onset at frame %d (sample %d, %.3fs)\n", i-1, sample, float64(sample)/float64(sampleRate))
			onsetCount++
		}
	}
	fmt.Printf("%d onsets detected across %d frames\n", onsetCount, len(values))
}

func newODF(variant string) (onset.ODF, error) {
	switch variant {
	case "energy":
		return onset.NewEnergyODF(), nil
	case "spectraldiff":
		return onset.NewSpectralDifferenceODF()
	case "complex":
		return onset.NewComplexODF()
	case "lpenergy":
		return onset.NewLPEnergyODF(), nil
	case "lpspectraldiff":
		return onset.NewLPSpectralDifferenceODF()
	case "lpcomplex":
		return onset.NewLPComplexODF()
	case "unmatched":
		return onset.NewUnmatchedPeaksODF()
	case "peakampdiff":
		return onset.NewPeakAmpDifferenceODF()
	default:
		return nil, fmt.Errorf("unknown odf variant %q", variant)
	}
}
