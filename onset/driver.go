package onset

import "fmt"

// runOffline frames signal at hopSize-sample strides, calling processFrame
// on each frameSize-sample window, then normalizes the resulting array to
// [0,1] by its peak value. Every ODF variant's Process method delegates
// here so the framing/normalization logic is written once.
func runOffline(frameSize, hopSize int, signal []float64, processFrame func([]float64) (float64, error)) ([]float64, error) {
	if frameSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("onset: invalid frame/hop size (%d/%d)", frameSize, hopSize)
	}
	if len(signal) < frameSize {
		return nil, fmt.Errorf("onset: signal shorter than frame size %d", frameSize)
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	odf := make([]float64, numFrames)

	var odfMax float64
	frame := 0
	for offset := 0; offset <= len(signal)-frameSize; offset += hopSize {
		v, err := processFrame(signal[offset : offset+frameSize])
		if err != nil {
			return nil, err
		}
		odf[frame] = v
		if v > odfMax {
			odfMax = v
		}
		frame++
	}

	if odfMax != 0 {
		for i := range odf {
			odf[i] /= odfMax
		}
	}
	return odf, nil
}
