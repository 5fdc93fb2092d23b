// Package quoteform implements the multi-step quote form controller: the step
// layout, per-step validation, navigation, keystroke normalisation, the
// progress curve and the session stores that carry a session between events.
package quoteform
