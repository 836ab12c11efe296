package sensor

import "time"

// MinPollInterval caps polling at 20 Hz.
const MinPollInterval = 50 * time.Millisecond

// Sample is the latest reading of one channel. It is overwritten on every poll.
type Sample struct {
	Channel Channel
	MM      int
	At      float64
}

// Sampler polls both channels no faster than its interval.
type Sampler struct {
	reader   DistanceReader
	interval float64

	X, Y     Sample
	lastPoll float64
	primed   bool
	polls    uint64
}

func NewSampler(r DistanceReader, interval time.Duration) *Sampler {
	if interval < MinPollInterval {
		interval = MinPollInterval
	}
	return &Sampler{
		reader:   r,
		interval: interval.Seconds(),
		X:        Sample{Channel: ChannelX},
		Y:        Sample{Channel: ChannelY},
	}
}

// Poll reads both channels if the interval has elapsed since the previous poll.
// The first call always polls.
func (s *Sampler) Poll(now float64) (bool, error) {
	if s.primed && now-s.lastPoll < s.interval {
		return false, nil
	}
	x, err := s.read(ChannelX)
	if err != nil {
		return false, err
	}
	y, err := s.read(ChannelY)
	if err != nil {
		return false, err
	}
	s.X = Sample{Channel: ChannelX, MM: x, At: now}
	s.Y = Sample{Channel: ChannelY, MM: y, At: now}
	s.lastPoll = now
	s.primed = true
	s.polls++
	return true, nil
}

func (s *Sampler) read(ch Channel) (int, error) {
	v, err := s.reader.Read(ch)
	if err != nil {
		return 0, &SensorFaultError{Channel: ch, Err: err}
	}
	if v < 0 {
		return 0, &SensorFaultError{Channel: ch, Value: v}
	}
	return v, nil
}

// Polls counts completed polls.
func (s *Sampler) Polls() uint64 { return s.polls }
