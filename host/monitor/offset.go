package monitor

import "time"

// OffsetStats accumulates device-vs-host clock offsets between reports.
type OffsetStats struct {
	count    int
	min, max time.Duration
	sum      time.Duration
}

func (s *OffsetStats) Add(offset time.Duration) {
	if s.count == 0 || offset < s.min {
		s.min = offset
	}
	if s.count == 0 || offset > s.max {
		s.max = offset
	}
	s.sum += offset
	s.count++
}

func (s *OffsetStats) Count() int { return s.count }

func (s *OffsetStats) Min() time.Duration { return s.min }

func (s *OffsetStats) Max() time.Duration { return s.max }

func (s *OffsetStats) Mean() time.Duration {
	if s.count == 0 {
		return 0
	}
	return s.sum / time.Duration(s.count)
}

func (s *OffsetStats) Reset() {
	*s = OffsetStats{}
}
