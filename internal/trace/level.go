package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level admits every scope up to and
// including its widest scope; LevelError admits only failures.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // invariant failures only
	LevelPhase        // driver and pass spans
	LevelDetail       // plus per-unit spans
	LevelDebug        // plus node points such as new signatures
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// widest is the coarsest-to-finest cut-off per level; zero admits no scope.
var widest = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeUnit,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name, case-insensitively; empty means off.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LevelOff, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether spans and points of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(widest) {
		return false
	}
	return scope != 0 && scope <= widest[l]
}
