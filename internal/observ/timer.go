package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration and metadata of one pipeline phase.
type Phase struct {
	Name  string
	Unit  string // empty for run-wide phases
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phase durations. Units are lowered concurrently, so a Timer is
// safe for use from several goroutines.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a run-wide phase and returns its index.
func (t *Timer) Begin(name string) int {
	return t.BeginUnit(name, "")
}

// BeginUnit starts a phase attributed to unit.
func (t *Timer) BeginUnit(name, unit string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Unit: unit, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary returns a human-readable table of the tracked phases, with per-unit
// phases folded into one row per phase name.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  (%d units)", p.Count)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport is the serialisable form of one phase row.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the timer. Run-wide phases are summed into the total;
// unit phases contribute to their row only, since they overlap in time.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report builds rows in first-seen order of phase name.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	var (
		report Report
		total  time.Duration
		rows   = make(map[string]int, len(t.phases))
	)
	for _, phase := range t.phases {
		if phase.Unit == "" {
			total += phase.Dur
		}
		idx, ok := rows[phase.Name]
		if !ok {
			idx = len(report.Phases)
			rows[phase.Name] = idx
			report.Phases = append(report.Phases, PhaseReport{Name: phase.Name})
		}
		row := &report.Phases[idx]
		row.DurationMS += durationToMillis(phase.Dur)
		row.Count++
		if phase.Note != "" && phase.Unit == "" {
			row.Note = phase.Note
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
