package spectrum

import "math"

// rolloffFraction is the cumulative energy share that defines the rolloff
// frequency.
const rolloffFraction = 0.85

// Stats holds summary statistics computed from an amplitude spectrum.
type Stats struct {
	Bins          int
	PeakBin       int
	PeakFrequency float64 // Hz
	PeakMagnitude float64
	Mean          float64
	Energy        float64 // sum of squared magnitudes
	Centroid      float64 // amplitude-weighted mean frequency (Hz)
	Spread        float64 // standard deviation around the centroid (Hz)
	Flatness      float64 // Wiener entropy, 0..1
	Rolloff       float64 // frequency below which 85% of the energy lies (Hz)
	Bandwidth     float64 // 3 dB width around the peak (Hz)
}

// Describe computes summary statistics for sp. An empty spectrum yields
// zero statistics with PeakBin set to -1.
func Describe(sp Spectrum) Stats {
	n := sp.Len()
	if n == 0 {
		return Stats{PeakBin: -1}
	}

	var s Stats
	s.Bins = n
	sum := 0.0
	for i, v := range sp.Magnitudes {
		sum += v
		s.Energy += v * v
		if v > sp.Magnitudes[s.PeakBin] {
			s.PeakBin = i
		}
	}
	s.PeakFrequency = sp.Frequencies[s.PeakBin]
	s.PeakMagnitude = sp.Magnitudes[s.PeakBin]
	s.Mean = sum / float64(n)

	s.Centroid = centroid(sp, sum)
	s.Spread = spread(sp, s.Centroid, sum)
	s.Flatness = flatness(sp.Magnitudes)
	s.Rolloff = rolloff(sp, s.Energy)
	s.Bandwidth = bandwidth(sp, s.PeakBin)
	return s
}

// centroid computes the amplitude-weighted mean frequency.
//
//	centroid = sum(f_i * m_i) / sum(m_i)
func centroid(sp Spectrum, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range sp.Magnitudes {
		weighted += sp.Frequencies[i] * v
	}
	return weighted / sumMag
}

// spread computes the standard deviation of the spectrum around the
// centroid.
func spread(sp Spectrum, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range sp.Magnitudes {
		d := sp.Frequencies[i] - cent
		weighted += d * d * v
	}
	return math.Sqrt(weighted / sumMag)
}

// flatness computes the ratio of geometric to arithmetic mean magnitude.
// Any zero bin makes the geometric mean, and so the flatness, zero.
func flatness(magnitude []float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}
	sumLin := 0.0
	sumLog := 0.0
	for _, v := range magnitude {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(magnitude))
	return math.Exp(sumLog/n) / (sumLin / n)
}

func rolloff(sp Spectrum, totalEnergy float64) float64 {
	if totalEnergy == 0 {
		return 0
	}
	threshold := rolloffFraction * totalEnergy
	cum := 0.0
	for i, v := range sp.Magnitudes {
		cum += v * v
		if cum >= threshold {
			return sp.Frequencies[i]
		}
	}
	return sp.Frequencies[sp.Len()-1]
}

// bandwidth finds the -3 dB points on both sides of the peak, with linear
// interpolation between bins.
func bandwidth(sp Spectrum, peakBin int) float64 {
	n := sp.Len()
	if n < 2 {
		return 0
	}
	peak := sp.Magnitudes[peakBin]
	if peak == 0 {
		return 0
	}
	threshold := peak / math.Sqrt2

	lower := sp.Frequencies[0]
	for i := peakBin; i >= 1; i-- {
		if sp.Magnitudes[i-1] <= threshold && sp.Magnitudes[i] > threshold {
			lower = crossing(sp, i-1, i, threshold)
			break
		}
	}
	upper := sp.Frequencies[n-1]
	for i := peakBin; i < n-1; i++ {
		if sp.Magnitudes[i+1] <= threshold && sp.Magnitudes[i] > threshold {
			upper = crossing(sp, i, i+1, threshold)
			break
		}
	}
	if upper < lower {
		return 0
	}
	return upper - lower
}

// crossing interpolates the frequency at which the magnitude crosses
// threshold between two adjacent bins.
func crossing(sp Spectrum, lo, hi int, threshold float64) float64 {
	fLo := sp.Frequencies[lo]
	fHi := sp.Frequencies[hi]
	dm := sp.Magnitudes[hi] - sp.Magnitudes[lo]
	if dm == 0 {
		return (fLo + fHi) / 2
	}
	t := (threshold - sp.Magnitudes[lo]) / dm
	return fLo + t*(fHi-fLo)
}
