// Package sensortest provides scripted distance readers for tests.
package sensortest

import (
	"fmt"

	"github.com/coreman2200/proxiglow/internal/sensor"
)

// Script replays fixed readings per channel, repeating the last value once exhausted.
// A non-nil Err is returned once the X sequence has been fully consumed.
type Script struct {
	X, Y []int
	Err  error

	next [2]int
}

var _ sensor.DistanceReader = (*Script)(nil)

func (s *Script) Read(ch sensor.Channel) (int, error) {
	var seq []int
	switch ch {
	case sensor.ChannelX:
		seq = s.X
	case sensor.ChannelY:
		seq = s.Y
	default:
		return 0, fmt.Errorf("no script for %s", ch)
	}
	i := s.next[ch]
	if i >= len(seq) {
		if ch == sensor.ChannelX && s.Err != nil {
			return 0, s.Err
		}
		if len(seq) == 0 {
			return 0, nil
		}
		return seq[len(seq)-1], nil
	}
	s.next[ch]++
	return seq[i], nil
}
