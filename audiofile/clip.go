package audiofile

import (
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// Clip is a decoded audio file: the mono signal at the source's native
// sample rate plus provenance about the original stream.
type Clip struct {
	// Samples holds the mono signal in [-1, 1]. Multi-channel sources are
	// mixed down as the per-frame mean across channels.
	Samples []float64

	// SampleRate is the native rate of the source in Hz.
	SampleRate int

	// Path is the file the clip was decoded from.
	Path string

	// Channels is the channel count of the source before mixdown.
	Channels int

	// BitDepth is the bit depth of the decoded stream.
	BitDepth int
}

// Duration returns the clip length as wall time.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(c.Samples)) / float64(c.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Peak returns the largest absolute sample value, 0 for an empty clip.
func (c *Clip) Peak() float64 {
	if len(c.Samples) == 0 {
		return 0
	}
	return vecmath.MaxAbs(c.Samples)
}
