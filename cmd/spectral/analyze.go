package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cwbudde/spectral/pipeline"
)

var analyzeFlags struct {
	png         bool
	csv         bool
	spectrogram bool
	welch       bool
	smooth      int
	jsonOut     bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input>...",
	Short: "Print spectrum statistics for audio files",
	Long: `analyze decodes each input, computes its single-sided amplitude spectrum
and prints summary statistics. Optional flags write the spectrum as a plot,
a CSV table or a spectrogram image next to the input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeFlags.png, "png", false, "write a spectrum plot next to each input")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.csv, "csv", false, "write the spectrum bins as CSV next to each input")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.spectrogram, "spectrogram", false, "write a spectrogram image next to each input")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.welch, "welch", false, "average overlapping segments instead of one full-length transform")
	analyzeCmd.Flags().IntVar(&analyzeFlags.smooth, "smooth", 0, "apply 1/N-octave smoothing to the spectrum (0 = off)")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.jsonOut, "json", false, "print one JSON report per line")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var bar *progressbar.ProgressBar
	if len(args) > 1 && !analyzeFlags.jsonOut {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetDescription("analyzing"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	failed := 0
	for _, path := range args {
		if err := analyzeOne(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func analyzeOne(path string) error {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	opts := []pipeline.Option{
		pipeline.WithWelch(analyzeFlags.welch),
		pipeline.WithSmoothing(analyzeFlags.smooth),
	}
	if analyzeFlags.png {
		opts = append(opts, pipeline.WithPlot(stem+"_spectrum.png"))
	}
	if analyzeFlags.csv {
		opts = append(opts, pipeline.WithCSV(stem+"_spectrum.csv"))
	}
	if analyzeFlags.spectrogram {
		opts = append(opts, pipeline.WithSpectrogram(stem+"_spectrogram.png"))
	}

	p, err := pipeline.New(opts...)
	if err != nil {
		return err
	}
	rep, err := p.AnalyzeFile(path)
	if err != nil {
		return err
	}

	if analyzeFlags.jsonOut {
		data, err := json.Marshal(rep)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printAnalysis(rep)
	return nil
}

func printAnalysis(rep *pipeline.AnalysisReport) {
	fmt.Printf("\n=== %s ===\n", filepath.Base(rep.Path))

	size := "unknown"
	if info, err := os.Stat(rep.Path); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", rep.SampleRate)
	fmt.Fprintf(tw, "channels\t%d\n", rep.Channels)
	fmt.Fprintf(tw, "bit depth\t%d\n", rep.BitDepth)
	fmt.Fprintf(tw, "duration\t%.2f s\n", rep.Duration.Seconds())
	fmt.Fprintf(tw, "size\t%s\n", size)
	fmt.Fprintf(tw, "bins\t%d\n", rep.Stats.Bins)
	fmt.Fprintf(tw, "resolution\t%.3f Hz\n", rep.Spectrum.Resolution())
	fmt.Fprintf(tw, "peak\t%.1f Hz (%.4g)\n", rep.Stats.PeakFrequency, rep.Stats.PeakMagnitude)
	fmt.Fprintf(tw, "centroid\t%.1f Hz\n", rep.Stats.Centroid)
	fmt.Fprintf(tw, "spread\t%.1f Hz\n", rep.Stats.Spread)
	fmt.Fprintf(tw, "rolloff\t%.1f Hz\n", rep.Stats.Rolloff)
	fmt.Fprintf(tw, "flatness\t%.4f\n", rep.Stats.Flatness)
	tw.Flush()

	for _, artifact := range []struct{ label, path string }{
		{"plot", rep.PlotPath},
		{"spectrogram", rep.SpectrogramPath},
		{"csv", rep.CSVPath},
	} {
		if artifact.path != "" {
			fmt.Printf("wrote %s: %s\n", artifact.label, artifact.path)
		}
	}
}
