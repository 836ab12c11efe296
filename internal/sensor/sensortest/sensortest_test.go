package sensortest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/proxiglow/internal/sensor"
)

func TestScriptRepeatsLastAndFails(t *testing.T) {
	s := &Script{X: []int{1, 2}, Y: []int{9}}
	for _, want := range []int{1, 2, 2} {
		v, err := s.Read(sensor.ChannelX)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	v, _ := s.Read(sensor.ChannelY)
	assert.Equal(t, 9, v)

	boom := errors.New("gone")
	s = &Script{X: []int{1}, Err: boom}
	_, err := s.Read(sensor.ChannelX)
	require.NoError(t, err)
	_, err = s.Read(sensor.ChannelX)
	assert.ErrorIs(t, err, boom)

	_, err = s.Read(sensor.Channel(5))
	assert.Error(t, err)
}
