package diag

// Severity ranks a diagnostic. Only SevError fails a run: lowering invariants
// (LOW) and unreadable units (IO) are errors, a broken cache entry is a
// warning, and project or timing notes (PRJ, OBS) are informational.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Fails reports whether a diagnostic of this severity fails the run.
func (s Severity) Fails() bool { return s >= SevError }
