// Package analysis characterises concentration profiles.
//
//   - [PowerSpectrum]: spectrum of a detrended field via go-dsp's FFT
//   - [HighFrequencyFraction]: share of spectral power above a cutoff
//   - [Summarize]: range, mass, curvature and transition width
//
// Diffusion damps short wavelengths fastest, so the high-frequency fraction
// falls as the run progresses:
//
//	before := analysis.HighFrequencyFraction(result.Initial, 0.25)
//	after := analysis.HighFrequencyFraction(result.Final, 0.25)
package analysis
