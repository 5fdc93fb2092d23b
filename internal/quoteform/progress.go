package quoteform

import "math"

// Progress is what the progress bar shows.
type Progress struct {
	// Fill is the bar width in percent, unrounded.
	Fill float64 `json:"fill"`
	// Percent is the readout, rounded to the nearest integer.
	Percent int `json:"percent"`
}

// ComputeProgress maps the current step to a bar position. The first step is
// always 0 and the last always 100; step k in between shows (k-1)/total.
func ComputeProgress(current, total int) Progress {
	var fill float64
	switch {
	case current <= 1:
		fill = 0
	case current >= total:
		fill = 100
	default:
		fill = float64(current-1) / float64(total) * 100
	}
	return Progress{Fill: fill, Percent: int(math.Round(fill))}
}
