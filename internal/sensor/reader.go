// Package sensor samples the two proximity channels, scales their readings and
// decides when nobody has interacted with the strip for a while.
package sensor

import "fmt"

// Channel addresses one of the two independent distance sensors.
type Channel int

const (
	ChannelX Channel = iota
	ChannelY
)

func (c Channel) String() string {
	switch c {
	case ChannelX:
		return "x"
	case ChannelY:
		return "y"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// DistanceReader returns a reading in millimeters for one channel.
type DistanceReader interface {
	Read(ch Channel) (int, error)
}

// SensorFaultError wraps an unreadable or invalid reading. It is not recovered locally.
type SensorFaultError struct {
	Channel Channel
	Value   int
	Err     error
}

func (e *SensorFaultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sensor %s: %v", e.Channel, e.Err)
	}
	return fmt.Sprintf("sensor %s: invalid reading %d mm", e.Channel, e.Value)
}

func (e *SensorFaultError) Unwrap() error { return e.Err }

// Ranger is a single-channel device such as a VL6180X.
type Ranger interface {
	Range() (int, error)
}

// Pair exposes two single-channel devices as one DistanceReader.
type Pair struct {
	X, Y Ranger
}

func (p Pair) Read(ch Channel) (int, error) {
	switch ch {
	case ChannelX:
		return p.X.Range()
	case ChannelY:
		return p.Y.Range()
	default:
		return 0, fmt.Errorf("no device for %s", ch)
	}
}

// ReaderFunc adapts a function into a DistanceReader.
type ReaderFunc func(ch Channel) (int, error)

func (f ReaderFunc) Read(ch Channel) (int, error) { return f(ch) }
