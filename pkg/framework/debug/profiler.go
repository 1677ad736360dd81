package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Profiler collects timing statistics for named sections.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Average returns the mean duration.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// NewProfiler creates an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{measurements: make(map[string]*Measurement)}
}

// Start begins timing a named section; call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record adds one timing to a section.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}
	m.Count++
	m.Total += elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}
}

// Get returns a copy of the named measurement.
func (p *Profiler) Get(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	return *m, true
}

// RealtimeLoad returns the average time spent rendering a block of
// blockSize samples as a percentage of the block's playback duration.
func (p *Profiler) RealtimeLoad(name string, sampleRate uint32, blockSize int) float64 {
	m, ok := p.Get(name)
	if !ok || m.Count == 0 || sampleRate == 0 || blockSize <= 0 {
		return 0
	}
	blockDuration := float64(blockSize) / float64(sampleRate) * float64(time.Second)
	return float64(m.Average()) / blockDuration * 100.0
}

// Report formats every measurement, sorted by name.
func (p *Profiler) Report() string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Get(name)
		fmt.Fprintf(&sb, "%s: count=%d total=%v avg=%v min=%v max=%v\n",
			name, m.Count, m.Total, m.Average(), m.Min, m.Max)
	}
	return sb.String()
}
