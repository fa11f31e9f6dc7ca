package profiling

import (
	"strings"
	"time"
)

// StageTimer accumulates the time spent in named stages of a repeated
// operation and hands an averaged report to a sink every N runs.
// It is not safe for concurrent use; give each worker its own timer.
type StageTimer struct {
	name   string
	every  int
	sink   func(name string, runs int, report string)
	order  []string
	sums   map[string]time.Duration
	runs   int
	total  time.Duration
	start  time.Time
	last   time.Time
	active bool
}

// NewStageTimer creates a timer that reports every `every` runs.
// A non-positive every disables the timer; all calls become no-ops.
func NewStageTimer(name string, every int, sink func(name string, runs int, report string)) *StageTimer {
	return &StageTimer{
		name:  name,
		every: every,
		sink:  sink,
		sums:  make(map[string]time.Duration),
	}
}

// Enabled reports whether the timer records anything.
func (t *StageTimer) Enabled() bool {
	return t != nil && t.every > 0
}

// Start begins a run.
func (t *StageTimer) Start() {
	if !t.Enabled() {
		return
	}
	t.start = time.Now()
	t.last = t.start
	t.active = true
}

// Mark attributes the time since the previous mark to stage.
func (t *StageTimer) Mark(stage string) {
	if !t.Enabled() || !t.active {
		return
	}
	now := time.Now()
	if _, ok := t.sums[stage]; !ok {
		t.order = append(t.order, stage)
	}
	t.sums[stage] += now.Sub(t.last)
	t.last = now
}

// End closes the run, emitting a report when the run count reaches every.
func (t *StageTimer) End() {
	if !t.Enabled() || !t.active {
		return
	}
	t.total += time.Since(t.start)
	t.active = false
	t.runs++
	if t.runs < t.every {
		return
	}
	if t.sink != nil {
		t.sink(t.name, t.runs, t.report())
	}
	t.runs = 0
	t.total = 0
	t.order = t.order[:0]
	clear(t.sums)
}

func (t *StageTimer) report() string {
	parts := make([]string, 0, len(t.order))
	for _, s := range t.order {
		parts = append(parts, s+":"+FormatMs(t.sums[s]/time.Duration(t.runs)))
	}
	parts = append(parts, "total:"+FormatMs(t.total/time.Duration(t.runs)))
	return strings.Join(parts, ", ")
}
