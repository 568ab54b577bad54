package pipeline

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/spectral/dsp/filter/design"
	"github.com/cwbudde/spectral/dsp/filter/iir"
	"github.com/cwbudde/spectral/dsp/signal"
	"github.com/cwbudde/spectral/dsp/spectrum"
	"github.com/cwbudde/spectral/render"
)

// ToneChange reports the measured amplitude of one probe frequency before
// and after filtering.
type ToneChange struct {
	FrequencyHz float64
	Before      float64
	After       float64
	ChangeDB    float64
}

// FilterReport is the result of running the filter stage on one file.
type FilterReport struct {
	Input      string
	Output     string
	SampleRate int
	Samples    int
	Duration   time.Duration

	LowHz    float64
	HighHz   float64
	Order    int
	KeepBand bool

	Pre       spectrum.Spectrum
	Post      spectrum.Spectrum
	PreStats  spectrum.Stats
	PostStats spectrum.Stats

	// Probes measure the band edges and the geometric band center.
	Probes []ToneChange

	// Peak is the filtered signal's peak before limiting.
	Peak    float64
	Limited bool

	PlotPath string
}

// FilterFile decodes inPath, applies the configured Butterworth filter,
// rescales the result if it clips, and writes it to outPath. An empty
// outPath derives the name from the input via DefaultOutputPath. The
// report carries the pre- and post-filter spectra of the signal.
func (p *Pipeline) FilterFile(inPath, outPath string) (*FilterReport, error) {
	clip, err := p.cfg.decode(inPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	analyzer, err := spectrum.NewAnalyzer(clip.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", inPath, err)
	}
	pre, err := analyzer.Compute(clip.Samples)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", inPath, err)
	}

	var b, a []float64
	if p.cfg.keepBand {
		b, a, err = design.Bandpass(p.cfg.order, p.cfg.lowHz, p.cfg.highHz, clip.SampleRate)
	} else {
		b, a, err = design.Bandstop(p.cfg.order, p.cfg.lowHz, p.cfg.highHz, clip.SampleRate)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	filt, err := iir.New(b, a)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	filtered := filt.Apply(clip.Samples)

	post, err := analyzer.Compute(filtered)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", inPath, err)
	}

	probes := measureProbes(clip.Samples, filtered, clip.SampleRate, p.cfg.lowHz, p.cfg.highHz)

	peak := signal.PeakAbs(filtered)
	limited, wasLimited, err := signal.LimitPeak(filtered, 1.0)
	if err != nil {
		return nil, fmt.Errorf("pipeline: limit: %w", err)
	}

	if outPath == "" {
		outPath = DefaultOutputPath(inPath)
	}
	if err := p.encoder()(outPath, limited, clip.SampleRate); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	report := &FilterReport{
		Input:      inPath,
		Output:     outPath,
		SampleRate: clip.SampleRate,
		Samples:    len(clip.Samples),
		Duration:   clip.Duration(),
		LowHz:      p.cfg.lowHz,
		HighHz:     p.cfg.highHz,
		Order:      p.cfg.order,
		KeepBand:   p.cfg.keepBand,
		Pre:        pre,
		Post:       post,
		PreStats:   spectrum.Describe(pre),
		PostStats:  spectrum.Describe(post),
		Probes:     probes,
		Peak:       peak,
		Limited:    wasLimited,
	}

	if p.cfg.plotPath != "" {
		title := "Amplitude spectrum: " + filepath.Base(inPath)
		series := []render.Series{
			{Label: "original", Spectrum: pre},
			{Label: "filtered", Spectrum: post},
		}
		if err := p.cfg.renderSpectrum(p.cfg.plotPath, series, render.WithTitle(title)); err != nil {
			return nil, fmt.Errorf("pipeline: plot: %w", err)
		}
		report.PlotPath = p.cfg.plotPath
	}

	return report, nil
}

// DefaultOutputPath derives the filtered-output name from the input path:
// the input stem plus "_filtered.wav", in the same directory.
func DefaultOutputPath(inPath string) string {
	stem := strings.TrimSuffix(inPath, filepath.Ext(inPath))
	return stem + "_filtered.wav"
}

// measureProbes reads the signal amplitude at the band edges and the
// geometric band center, before and after filtering. Probes beyond
// Nyquist are skipped.
func measureProbes(before, after []float64, sampleRate int, lowHz, highHz float64) []ToneChange {
	freqs := []float64{lowHz, math.Sqrt(lowHz * highHz), highHz}

	probes := make([]ToneChange, 0, len(freqs))
	for _, f := range freqs {
		pre, err := spectrum.ToneAmplitude(before, f, float64(sampleRate))
		if err != nil {
			continue
		}
		post, err := spectrum.ToneAmplitude(after, f, float64(sampleRate))
		if err != nil {
			continue
		}
		probes = append(probes, ToneChange{
			FrequencyHz: f,
			Before:      pre,
			After:       post,
			ChangeDB:    changeDB(pre, post),
		})
	}
	return probes
}

// changeDB expresses after/before in decibels, 0 when the tone was absent
// to begin with.
func changeDB(before, after float64) float64 {
	if before <= 0 {
		return 0
	}
	if after <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(after/before)
}
