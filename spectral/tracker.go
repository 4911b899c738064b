package spectral

import "math"

// Tracker establishes McAulay-Quatieri partial correspondences across
// consecutive frames. It holds only the previous frame's PeakList; tracking
// is one-frame memory with no multi-frame confirmation or birth/death
// smoothing.
type Tracker struct {
	sampleRate       float64
	matchingInterval float64
	prev             PeakList
}

// NewTracker creates a tracker. sampleRate seeds the initial "best distance"
// used while searching for a match (any valid interval beats it).
func NewTracker(sampleRate int, matchingInterval float64) *Tracker {
	return &Tracker{
		sampleRate:       float64(sampleRate),
		matchingInterval: matchingInterval,
	}
}

// Reset clears tracking history so the next Track call is treated as the
// first frame.
func (t *Tracker) Reset() {
	t.prev = nil
}

// Track links peaks in current to peaks in the previously tracked list,
// setting Prev/Next on matched peaks, and returns current in its original
// order. The first call (or the first call after
// Reset) only stores current as the new previous list.
func (t *Tracker) Track(current PeakList) PeakList {
	if t.prev == nil {
		t.prev = current
		return current
	}

	for _, p := range t.prev {
		candidate := t.findClosestMatch(p, current, true)
		if candidate == nil {
			continue
		}
		counter := t.findClosestMatch(candidate, t.prev, false)
		if counter == p {
			p.Next = candidate
			candidate.Prev = p
			continue
		}
		lower := t.freePeakBelow(candidate, current)
		if lower != nil && math.Abs(lower.Frequency-p.Frequency) < t.matchingInterval {
			p.Next = lower
			lower.Prev = p
		}
	}

	t.prev = current
	return current
}

// findClosestMatch finds the peak in list without an existing link (Prev if
// backwards, Next otherwise) whose frequency is closest to p's and within
// the matching interval.
func (t *Tracker) findClosestMatch(p *Peak, list PeakList, backwards bool) *Peak {
	var match *Peak
	best := t.sampleRate
	for _, c := range list {
		if backwards {
			if c.Prev != nil {
				continue
			}
		} else if c.Next != nil {
			continue
		}
		d := math.Abs(c.Frequency - p.Frequency)
		if d < t.matchingInterval && d < best {
			best = d
			match = c
		}
	}
	return match
}

// freePeakBelow returns the closest unmatched peak in list with frequency
// strictly less than candidate's, excluding candidate itself.
func (t *Tracker) freePeakBelow(candidate *Peak, list PeakList) *Peak {
	var match *Peak
	closest := t.sampleRate
	for _, c := range list {
		if c == candidate || c.Prev != nil {
			continue
		}
		if c.Frequency >= candidate.Frequency {
			continue
		}
		d := math.Abs(c.Frequency - candidate.Frequency)
		if d < closest {
			closest = d
			match = c
		}
	}
	return match
}
