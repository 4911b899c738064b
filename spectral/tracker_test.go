package spectral

import "testing"

func peakAt(freq, amp float64) *Peak {
	return &Peak{Frequency: freq, Amplitude: amp}
}

func TestTrackerFirstFrameHasNoLinks(t *testing.T) {
	tr := NewTracker(44100, 50.0)
	frame := PeakList{peakAt(100, 1), peakAt(500, 1)}

	tracked := tr.Track(frame)
	for _, p := range tracked {
		if p.Prev != nil {
			t.Fatalf("first frame peak should have no Prev link, got %v", p.Prev)
		}
	}
}

func TestTrackerLinksStablePartial(t *testing.T) {
	tr := NewTracker(44100, 50.0)

	frame1 := PeakList{peakAt(440, 1.0)}
	tr.Track(frame1)

	frame2 := PeakList{peakAt(442, 1.0)}
	tracked2 := tr.Track(frame2)

	if frame1[0].Next != tracked2[0] {
		t.Fatalf("expected frame1 peak to link forward to frame2 peak")
	}
	if tracked2[0].Prev != frame1[0] {
		t.Fatalf("tracker symmetry violated: frame2 peak does not link back to frame1 peak")
	}
}

func TestTrackerSymmetryAcrossMultipleFrames(t *testing.T) {
	tr := NewTracker(44100, 80.0)

	prev := PeakList{peakAt(200, 1), peakAt(600, 1)}
	tr.Track(prev)

	for step := 0; step < 5; step++ {
		cur := PeakList{peakAt(200+float64(step), 1), peakAt(600-float64(step), 1)}
		tracked := tr.Track(cur)
		for _, p := range tracked {
			if p.Prev != nil && p.Prev.Next != p {
				t.Fatalf("tracker symmetry violated at step %d: p.Prev.Next != p", step)
			}
		}
		prev = tracked
	}
	_ = prev
}

func TestTrackerRespectsMatchingInterval(t *testing.T) {
	tr := NewTracker(44100, 10.0)

	frame1 := PeakList{peakAt(100, 1)}
	tr.Track(frame1)

	frame2 := PeakList{peakAt(300, 1)}
	tracked2 := tr.Track(frame2)

	if tracked2[0].Prev != nil {
		t.Fatalf("peak 200 Hz away should not match under a 10 Hz matching interval")
	}
}

func TestTrackerResetClearsHistory(t *testing.T) {
	tr := NewTracker(44100, 50.0)
	tr.Track(PeakList{peakAt(440, 1)})
	tr.Reset()

	tracked := tr.Track(PeakList{peakAt(440, 1)})
	if tracked[0].Prev != nil {
		t.Fatalf("expected no Prev link on first frame after Reset")
	}
}
