package render

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/spectral/dsp/spectrum"
)

// audibleLowHz clips the frequency axis at the lower edge of hearing.
// Log-scaled axes cannot start at 0 anyway.
const audibleLowHz = 20

// ErrNoData is returned when there is nothing to draw or export.
var ErrNoData = errors.New("render: no spectrum data")

// Series pairs a legend label with a spectrum for plotting.
type Series struct {
	Label    string
	Spectrum spectrum.Spectrum
}

// PlotOption configures SpectrumPNG.
type PlotOption func(*plotConfig)

type plotConfig struct {
	title string
}

// WithTitle sets the plot title. The default is "Amplitude spectrum".
func WithTitle(title string) PlotOption {
	return func(c *plotConfig) { c.title = title }
}

// SpectrumPNG draws one or more spectra into a PNG at path: logarithmic
// frequency axis from 20 Hz to the highest Nyquist among the series,
// linear magnitude axis starting at zero.
func SpectrumPNG(path string, series []Series, opts ...PlotOption) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: no series", ErrNoData)
	}

	cfg := plotConfig{title: "Amplitude spectrum"}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	nyquist := 0.0
	drawn := 0
	for i, s := range series {
		pts := audiblePoints(s.Spectrum)
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("render: line %q: %w", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}

		if top := s.Spectrum.Frequencies[s.Spectrum.Len()-1]; top > nyquist {
			nyquist = top
		}
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("%w: every series lies below %d Hz", ErrNoData, audibleLowHz)
	}

	p.X.Min = audibleLowHz
	p.X.Max = nyquist
	p.Y.Min = 0
	p.Legend.Top = true

	if err := p.Save(15*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// audiblePoints converts a spectrum to plot points, dropping bins below
// the audible cutoff.
func audiblePoints(sp spectrum.Spectrum) plotter.XYs {
	pts := make(plotter.XYs, 0, sp.Len())
	for i, f := range sp.Frequencies {
		if f < audibleLowHz {
			continue
		}
		pts = append(pts, plotter.XY{X: f, Y: sp.Magnitudes[i]})
	}
	return pts
}
