// Package observ collects wall-clock timings of pipeline phases for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// phaseStat aggregates every run of one named phase. A batch of files
// produces one "parse" row, not one per file.
type phaseStat struct {
	name  string
	runs  int
	total time.Duration
	worst time.Duration
	note  string
}

// Timer is safe for concurrent use and nil-safe: a nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	order  []*phaseStat
	byName map[string]*phaseStat
}

func NewTimer() *Timer { return &Timer{byName: make(map[string]*phaseStat)} }

// Track starts one run of a phase; calling the returned func ends it.
// A non-empty note replaces the phase's previous note.
//
//	done := timer.Track("parse")
//	defer done("")
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	start := time.Now()
	return func(note string) { t.add(name, time.Since(start), note) }
}

func (t *Timer) add(name string, d time.Duration, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.byName[name]
	if st == nil {
		st = &phaseStat{name: name}
		t.byName[name] = st
		t.order = append(t.order, st)
	}
	st.runs++
	st.total += d
	st.worst = max(st.worst, d)
	if note != "" {
		st.note = note
	}
}

// PhaseReport is one phase of a Report.
type PhaseReport struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	DurationMS float64 `json:"duration_ms"`
	MaxMS      float64 `json:"max_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report перечисляет фазы в порядке первого запуска.
// TotalMS sums all phases; phases that overlap in time are counted twice.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, st := range t.order {
		r.Phases = append(r.Phases, PhaseReport{
			Name:       st.name,
			Runs:       st.runs,
			DurationMS: millis(st.total),
			MaxMS:      millis(st.worst),
			Note:       st.note,
		})
		r.TotalMS += millis(st.total)
	}
	return r
}

// Summary renders the report as the --timings table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.3f ms", p.Name, p.DurationMS)
		if p.Runs > 1 {
			fmt.Fprintf(&sb, "  x%d, max %.3f ms", p.Runs, p.MaxMS)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %9.3f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 { return d.Seconds() * 1e3 }
