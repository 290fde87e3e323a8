// Package diag defines the diagnostic model shared by the lowering driver and
// the CLI.
//
// A Diagnostic carries a Severity, a stable Code, a short message, the primary
// source.Span and optional notes. Producers emit through a Reporter; the
// driver collects into a Bag per unit and merges the bags once all units are
// done, so no Bag is ever shared between goroutines.
//
// Invariant violations raised by the array lowering are fatal: the driver
// records them as SevError diagnostics with a Lower* code and then stops.
package diag
