// Package audiofile decodes audio files into mono float64 signals and
// encodes processed signals back to disk.
//
// Load reads WAV, FLAC and MP3 files, chosen by extension, and preserves
// the source's native sample rate. Multi-channel sources are mixed down to
// mono as the per-frame mean across channels; integer PCM is scaled to
// [-1, 1] by 1 << (bitDepth - 1). WriteWAV persists a signal as 16-bit
// PCM WAV, optionally with triangular dither at the quantization step.
package audiofile
