package profiling

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frame is a per-frame CPU stopwatch keyed by "subsystem.Operation" names.
// It is meant for the host's main loop and is not safe for concurrent use.
type Frame struct {
	totals map[string]time.Duration
	now    func() time.Time
}

// NewFrame returns an empty frame profile.
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration), now: time.Now}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer prof.Track("viewer.Frame")()
func (f *Frame) Track(name string) func() {
	start := f.now()
	return func() {
		f.totals[name] += f.now().Sub(start)
	}
}

// add records d under name directly.
func (f *Frame) add(name string, d time.Duration) {
	f.totals[name] += d
}

// Reset clears the totals. Call at the start of each frame.
func (f *Frame) Reset() {
	clear(f.totals)
}

// get returns the total recorded under name this frame.
func (f *Frame) get(name string) time.Duration {
	return f.totals[name]
}

// SumWithPrefix adds up every entry whose name starts with prefix.
func (f *Frame) SumWithPrefix(prefix string) time.Duration {
	var sum time.Duration
	for k, v := range f.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals, longest first.
// Example: "viewer.Frame:4.2ms, glfw.SwapBuffers:2.1ms"
func (f *Frame) TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	list := make([]entry, 0, len(f.totals))
	for k, v := range f.totals {
		list = append(list, entry{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = max(0, min(n, len(list)))

	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, e.name+":"+formatMs(e.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops ".0".
func formatMs(d time.Duration) string {
	s := fmt.Sprintf("%.1f", float64(d.Microseconds())/1000.0)
	return strings.TrimSuffix(s, ".0") + "ms"
}
