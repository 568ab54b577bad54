package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/spectral/pipeline"
)

var filterFlags struct {
	low        float64
	high       float64
	order      int
	keepBand   bool
	out        string
	png        bool
	dither     bool
	ditherSeed uint64
}

var filterCmd = &cobra.Command{
	Use:   "filter <input>",
	Short: "Rewrite a file through a Butterworth band filter",
	Long: `filter decodes the input, removes the configured frequency band with a
Butterworth band-stop filter and writes the result as 16-bit WAV. With
--keep-band the filter is inverted and everything outside the band is
removed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().Float64Var(&filterFlags.low, "low", pipeline.DefaultLowHz, "lower band edge in Hz")
	filterCmd.Flags().Float64Var(&filterFlags.high, "high", pipeline.DefaultHighHz, "upper band edge in Hz")
	filterCmd.Flags().IntVar(&filterFlags.order, "order", pipeline.DefaultOrder, "Butterworth filter order")
	filterCmd.Flags().BoolVar(&filterFlags.keepBand, "keep-band", false, "keep the band instead of removing it")
	filterCmd.Flags().StringVar(&filterFlags.out, "out", "", "output path (default <input>_filtered.wav)")
	filterCmd.Flags().BoolVar(&filterFlags.png, "png", false, "write a before/after spectrum plot next to the output")
	filterCmd.Flags().BoolVar(&filterFlags.dither, "dither", false, "apply triangular dither when quantizing")
	filterCmd.Flags().Uint64Var(&filterFlags.ditherSeed, "dither-seed", 1, "dither noise seed")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	in := args[0]
	out := filterFlags.out
	if out == "" {
		out = pipeline.DefaultOutputPath(in)
	}

	opts := []pipeline.Option{
		pipeline.WithBand(filterFlags.low, filterFlags.high),
		pipeline.WithOrder(filterFlags.order),
		pipeline.WithKeepBand(filterFlags.keepBand),
	}
	if filterFlags.dither {
		opts = append(opts, pipeline.WithDither(filterFlags.ditherSeed))
	}
	if filterFlags.png {
		stem := strings.TrimSuffix(out, filepath.Ext(out))
		opts = append(opts, pipeline.WithPlot(stem+"_spectrum.png"))
	}

	p, err := pipeline.New(opts...)
	if err != nil {
		return err
	}
	rep, err := p.FilterFile(in, out)
	if err != nil {
		return err
	}

	printFilterReport(rep)
	return nil
}

func printFilterReport(rep *pipeline.FilterReport) {
	mode := "stop"
	if rep.KeepBand {
		mode = "keep"
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "input\t%s\n", rep.Input)
	fmt.Fprintf(tw, "output\t%s\n", rep.Output)
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", rep.SampleRate)
	fmt.Fprintf(tw, "duration\t%.2f s\n", rep.Duration.Seconds())
	fmt.Fprintf(tw, "band\t%.0f-%.0f Hz (%s, order %d)\n", rep.LowHz, rep.HighHz, mode, rep.Order)
	fmt.Fprintf(tw, "peak before\t%.1f Hz (%.4g)\n", rep.PreStats.PeakFrequency, rep.PreStats.PeakMagnitude)
	fmt.Fprintf(tw, "peak after\t%.1f Hz (%.4g)\n", rep.PostStats.PeakFrequency, rep.PostStats.PeakMagnitude)
	tw.Flush()

	if len(rep.Probes) > 0 {
		fmt.Println()
		pw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(pw, "Probe [Hz]\tBefore\tAfter\tChange [dB]\n")
		fmt.Fprintf(pw, "----------\t------\t-----\t-----------\n")
		for _, probe := range rep.Probes {
			fmt.Fprintf(pw, "%.1f\t%.4g\t%.4g\t%+.1f\n", probe.FrequencyHz, probe.Before, probe.After, probe.ChangeDB)
		}
		pw.Flush()
	}

	if rep.Limited {
		fmt.Printf("peak %.3f limited to 1.0 before writing\n", rep.Peak)
	}
	if rep.PlotPath != "" {
		fmt.Printf("wrote plot: %s\n", rep.PlotPath)
	}
}
