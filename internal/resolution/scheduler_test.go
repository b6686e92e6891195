package resolution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameScheduler_RunsDueTasksInOrder(t *testing.T) {
	s := NewFrameScheduler(0)
	var order []string
	s.After(2*time.Second, func() { order = append(order, "b") })
	s.After(time.Second, func() { order = append(order, "a") })
	s.After(2*time.Second, func() { order = append(order, "c") })

	assert.Zero(t, s.Advance(500*time.Millisecond))
	assert.Equal(t, 1, s.Advance(time.Second))
	assert.Equal(t, 2, s.Advance(5*time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, s.Pending())
}

func TestFrameScheduler_Cancel(t *testing.T) {
	s := NewFrameScheduler(0)
	ran := false
	task := s.After(time.Second, func() { ran = true })
	task.Cancel()

	assert.Zero(t, s.Advance(10*time.Second))
	assert.False(t, ran)
}

func TestFrameScheduler_RescheduleFromCallback(t *testing.T) {
	s := NewFrameScheduler(0)
	count := 0
	var tick func()
	tick = func() {
		count++
		s.After(2*time.Second, tick)
	}
	s.After(2*time.Second, tick)

	for now := time.Duration(0); now <= 10*time.Second; now += 100 * time.Millisecond {
		s.Advance(now)
	}
	require.Equal(t, 5, count)
	assert.Equal(t, 1, s.Pending())
}

func TestFrameScheduler_ClockNeverGoesBack(t *testing.T) {
	s := NewFrameScheduler(5 * time.Second)
	ran := false
	s.After(time.Second, func() { ran = true })
	s.Advance(time.Second)
	assert.False(t, ran)
	s.Advance(6 * time.Second)
	assert.True(t, ran)
}
