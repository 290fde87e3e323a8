package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lowering invariants. Any of these aborts the run.
	LowerInfo        Code = 3000
	LowerInvariant   Code = 3001
	LowerNotArray    Code = 3002
	LowerUnknownKind Code = 3003
	LowerDimensions  Code = 3004
	LowerVarargs     Code = 3005

	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
	IOWriteError    Code = 4003
	IOCacheError    Code = 4004

	ProjInfo          Code = 5000
	ProjConfigInvalid Code = 5001
	ProjNoInputs      Code = 5002
	ProjOutputClash   Code = 5003

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:       "Unknown error",
		LowerInfo:         "Lowering information",
		LowerInvariant:    "Lowering invariant violated",
		LowerNotArray:     "Array construction of a non-array type",
		LowerUnknownKind:  "Array element type has no runtime kind",
		LowerDimensions:   "Dimension count does not match the array type",
		LowerVarargs:      "Malformed variable-arity call",
		IOLoadFileError:   "I/O load file error",
		IODecodeError:     "Unit decode error",
		IOWriteError:      "I/O write error",
		IOCacheError:      "Cache error",
		ProjInfo:          "Project information",
		ProjConfigInvalid: "Invalid jlower.toml",
		ProjNoInputs:      "No input units",
		ProjOutputClash:   "Two units map to the same output file",
		ObsInfo:           "Observability information",
		ObsTimings:        "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
