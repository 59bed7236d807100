package batch

import (
	"fmt"
	"time"

	"github.com/codahale/hdrhistogram"
)

// Stats collects per-light generation latency.
type Stats struct {
	hist *hdrhistogram.Histogram

	Generated int
	Failed    int
	Skipped   int
}

// Latency is recorded in microseconds between 1µs and 10 minutes.
const (
	minLatency = 1
	maxLatency = int64(10 * time.Minute / time.Microsecond)
)

func newStats() *Stats {
	return &Stats{hist: hdrhistogram.New(minLatency, maxLatency, 3)}
}

func (s *Stats) record(d time.Duration) {
	us := d.Microseconds()
	if us < minLatency {
		us = minLatency
	} else if us > maxLatency {
		us = maxLatency
	}
	_ = s.hist.RecordValue(us)
}

// Count returns the number of recorded generations.
func (s *Stats) Count() int64 {
	return s.hist.TotalCount()
}

// Percentile returns the latency at q (0-100).
func (s *Stats) Percentile(q float64) time.Duration {
	return time.Duration(s.hist.ValueAtQuantile(q)) * time.Microsecond
}

// Max returns the slowest recorded generation.
func (s *Stats) Max() time.Duration {
	return time.Duration(s.hist.Max()) * time.Microsecond
}

// Mean returns the average latency.
func (s *Stats) Mean() time.Duration {
	return time.Duration(s.hist.Mean() * float64(time.Microsecond))
}

func (s *Stats) String() string {
	if s.Count() == 0 {
		return fmt.Sprintf("generated=%d failed=%d skipped=%d", s.Generated, s.Failed, s.Skipped)
	}
	return fmt.Sprintf("generated=%d failed=%d skipped=%d p50=%v p99=%v max=%v",
		s.Generated, s.Failed, s.Skipped,
		s.Percentile(50), s.Percentile(99), s.Max())
}
