package diag

import (
	"fmt"

	"jlower/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string // file the unit was loaded from, if any
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// String renders the one-line form used by the CLI:
// "path:1:10-14: ERROR [LOW3002]: message".
func (d Diagnostic) String() string {
	loc := d.Primary.String()
	if d.Path != "" {
		loc = d.Path + ":" + loc
	}
	return fmt.Sprintf("%s: %s [%s]: %s", loc, d.Severity, d.Code.ID(), d.Message)
}
