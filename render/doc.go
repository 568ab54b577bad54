// Package render turns spectra and signals into files a person can look
// at: line plots of amplitude spectra on a logarithmic frequency axis,
// time-frequency spectrogram images, and CSV exports of the raw bins.
//
// Rendering stays out of the numeric packages; everything here takes
// computed values and only deals in presentation and I/O.
package render
