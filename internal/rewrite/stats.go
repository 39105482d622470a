package rewrite

import (
	"sort"
	"sync"
	"time"
)

type renderSample struct {
	timestamp  time.Time
	durationMs int64
	warnings   int
}

// StatsSnapshot is a point-in-time aggregate of recent renders.
type StatsSnapshot struct {
	Count         int     `json:"count"`
	MinMs         int64   `json:"min_ms"`
	MaxMs         int64   `json:"max_ms"`
	AvgMs         float64 `json:"avg_ms"`
	P50Ms         float64 `json:"p50_ms"`
	P95Ms         float64 `json:"p95_ms"`
	TotalWarnings int     `json:"total_warnings"`
}

// RenderStats tracks render durations and warning counts within a rolling
// window. Safe for concurrent use.
type RenderStats struct {
	mu      sync.Mutex
	samples []renderSample
	maxAge  time.Duration
}

func NewRenderStats(maxAge time.Duration) *RenderStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &RenderStats{
		samples: make([]renderSample, 0, 64),
		maxAge:  maxAge,
	}
}

func (s *RenderStats) Record(duration time.Duration, warnings int) {
	ms := duration.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, renderSample{
		timestamp:  now,
		durationMs: ms,
		warnings:   warnings,
	})
}

func (s *RenderStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	var warnings int
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		warnings += sm.warnings
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count:         len(values),
		MinMs:         values[0],
		MaxMs:         values[len(values)-1],
		AvgMs:         float64(sum) / float64(len(values)),
		P50Ms:         percentile(values, 50),
		P95Ms:         percentile(values, 95),
		TotalWarnings: warnings,
	}
}

func (s *RenderStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
