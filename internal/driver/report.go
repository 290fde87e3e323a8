package driver

import (
	"errors"

	"jlower/internal/arrays"
	"jlower/internal/diag"
	"jlower/internal/source"
)

// ReportError records a file-level error diagnostic.
func ReportError(bag *diag.Bag, path string, code diag.Code, msg string) {
	diag.ReportError(diag.BagReporter{Bag: bag, Path: path}, code, source.Span{}, msg).Emit()
}

// ReportWarning records a file-level warning diagnostic.
func ReportWarning(bag *diag.Bag, path string, code diag.Code, msg string) {
	diag.ReportWarning(diag.BagReporter{Bag: bag, Path: path}, code, source.Span{}, msg).Emit()
}

// reportLowerError turns an aborted lowering into a positioned diagnostic.
func reportLowerError(bag *diag.Bag, path string, err error) {
	var span source.Span
	var ie *arrays.InvariantError
	if errors.As(err, &ie) {
		span = ie.Span
	}
	r := diag.BagReporter{Bag: bag, Path: path}
	diag.ReportError(r, lowerCode(err), span, err.Error()).Emit()
}

func lowerCode(err error) diag.Code {
	switch {
	case errors.Is(err, arrays.ErrNotArray):
		return diag.LowerNotArray
	case errors.Is(err, arrays.ErrUnknownKind):
		return diag.LowerUnknownKind
	case errors.Is(err, arrays.ErrTooFewDimensions):
		return diag.LowerDimensions
	case errors.Is(err, arrays.ErrVarargsShape):
		return diag.LowerVarargs
	default:
		return diag.LowerInvariant
	}
}
