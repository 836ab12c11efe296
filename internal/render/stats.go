package render

import "time"

// Stats tracks tick execution time since the last reset.
type Stats struct {
	N     int
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

func (s *Stats) Observe(d time.Duration) {
	if s.N == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.N++
	s.Total += d
}

func (s Stats) Avg() time.Duration {
	if s.N == 0 {
		return 0
	}
	return s.Total / time.Duration(s.N)
}

func (s *Stats) Reset() { *s = Stats{} }

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000.0 }
