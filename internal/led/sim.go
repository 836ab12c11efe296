package led

import "github.com/rs/zerolog"

// Sim keeps frames in memory and logs a compact summary of each one at debug
// level. Useful headless and in tests.
type Sim struct {
	Count   int
	Last    []byte
	History [][]byte
	Closed  bool

	keep int
	log  zerolog.Logger
}

// NewSim records up to keep frames in History; keep <= 0 records none.
func NewSim(log zerolog.Logger, keep int) *Sim {
	return &Sim{keep: keep, log: log.With().Str("component", "sim").Logger()}
}

func (s *Sim) Write(rgb []byte) error {
	s.Count++
	s.Last = append(s.Last[:0], rgb...)
	if s.keep > 0 {
		if len(s.History) == s.keep {
			s.History = append(s.History[:0], s.History[1:]...)
		}
		s.History = append(s.History, append([]byte(nil), rgb...))
	}
	if e := s.log.Debug(); e.Enabled() {
		var r, g, b float64
		n := len(rgb) / 3
		for i := 0; i < n; i++ {
			r += float64(rgb[3*i])
			g += float64(rgb[3*i+1])
			b += float64(rgb[3*i+2])
		}
		if n == 0 {
			n = 1
		}
		e.Int("frame", s.Count).
			Floats64("avg", []float64{r / float64(n), g / float64(n), b / float64(n)}).
			Hex("first", rgb[:min(3, len(rgb))]).
			Msg("frame")
	}
	return nil
}

func (s *Sim) Close() error {
	s.Closed = true
	return nil
}
