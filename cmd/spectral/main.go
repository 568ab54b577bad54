// Command spectral analyzes and filters the frequency content of audio
// files.
//
// Usage:
//
//	spectral analyze [flags] <input>...
//	spectral filter [flags] <input>
//
// Examples:
//
//	spectral analyze song.wav
//	spectral analyze --png --csv --welch a.flac b.flac
//	spectral filter song.mp3
//	spectral filter --low 200 --high 3000 --keep-band --out voice.wav song.wav
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spectral",
	Short: "Audio spectrum analysis and band filtering",
	Long: `spectral inspects the frequency content of WAV, FLAC and MP3 files and
rewrites them through a Butterworth band filter.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
