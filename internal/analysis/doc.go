// Package analysis provides tools for characterising recorded field runs.
//
//   - [Summarize]: min, max, mean and standard deviation of a series
//   - [PowerSpectrum] and [DominantPeriod]: FFT of a stats series, useful for
//     spotting the rhythm of periodic pointer drivers
//   - [Sweep]: parameter sweep over headless runs
//   - [Divergence]: separation of two fields that differ by a small offset
//   - [ScatterToASCII]: terminal scatter plot of point sets
//
// # Periodic Input
//
// A pointer driver that clicks every N frames leaves a peak at period N in
// the population spectrum:
//
//	period, _ := analysis.DominantPeriod(population)
package analysis
