package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cwbudde/spectral/dsp/spectrum"
	"github.com/cwbudde/spectral/render"
)

// AnalysisReport is the result of analyzing one file.
type AnalysisReport struct {
	Path       string        `json:"path"`
	SampleRate int           `json:"sample_rate"`
	Samples    int           `json:"samples"`
	Channels   int           `json:"channels"`
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration_ns"`

	Stats spectrum.Stats `json:"stats"`

	Spectrum spectrum.Spectrum `json:"-"`

	PlotPath        string `json:"plot_path,omitempty"`
	SpectrogramPath string `json:"spectrogram_path,omitempty"`
	CSVPath         string `json:"csv_path,omitempty"`
}

// AnalyzeFile decodes path, computes its spectrum and summary statistics,
// and writes any configured artifacts.
func (p *Pipeline) AnalyzeFile(path string) (*AnalysisReport, error) {
	clip, err := p.cfg.decode(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	analyzer, err := spectrum.NewAnalyzer(clip.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", path, err)
	}

	var sp spectrum.Spectrum
	if p.cfg.welch {
		sp, err = analyzer.Welch(clip.Samples)
	} else {
		sp, err = analyzer.Compute(clip.Samples)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", path, err)
	}
	if p.cfg.smooth > 0 {
		sp, err = sp.Smoothed(p.cfg.smooth)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", path, err)
		}
	}

	report := &AnalysisReport{
		Path:       path,
		SampleRate: clip.SampleRate,
		Samples:    len(clip.Samples),
		Channels:   clip.Channels,
		BitDepth:   clip.BitDepth,
		Duration:   clip.Duration(),
		Spectrum:   sp,
		Stats:      spectrum.Describe(sp),
	}

	if p.cfg.plotPath != "" {
		title := "Amplitude spectrum: " + filepath.Base(path)
		series := []render.Series{{Spectrum: sp}}
		if err := p.cfg.renderSpectrum(p.cfg.plotPath, series, render.WithTitle(title)); err != nil {
			return nil, fmt.Errorf("pipeline: plot: %w", err)
		}
		report.PlotPath = p.cfg.plotPath
	}
	if p.cfg.spectrogramPath != "" {
		if err := p.cfg.renderSpectrogram(p.cfg.spectrogramPath, clip.Samples, clip.SampleRate); err != nil {
			return nil, fmt.Errorf("pipeline: spectrogram: %w", err)
		}
		report.SpectrogramPath = p.cfg.spectrogramPath
	}
	if p.cfg.csvPath != "" {
		if err := p.cfg.writeCSV(p.cfg.csvPath, sp); err != nil {
			return nil, fmt.Errorf("pipeline: csv: %w", err)
		}
		report.CSVPath = p.cfg.csvPath
	}

	return report, nil
}
