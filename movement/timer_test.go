package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerExpiresOnce(t *testing.T) {
	var tm Timer
	assert.False(t, tm.Advance(dt), "zero timer never fires")

	tm.Start(3 * dt)
	assert.False(t, tm.Advance(dt))
	assert.False(t, tm.Advance(dt))
	assert.True(t, tm.Advance(dt))
	assert.False(t, tm.Active())
	assert.False(t, tm.Advance(dt))
}

func TestTimerCancel(t *testing.T) {
	var tm Timer
	tm.Start(1)
	tm.Advance(0.25)
	assert.InDelta(t, 0.25, tm.Elapsed(), 1e-12)

	tm.Cancel()
	assert.False(t, tm.Active())
	assert.Zero(t, tm.Elapsed())
	for i := 0; i < 100; i++ {
		assert.False(t, tm.Advance(dt))
	}
}

func TestTimerRestartResetsElapsed(t *testing.T) {
	var tm Timer
	tm.Start(0.1)
	tm.Advance(0.05)
	tm.Start(0.1)
	assert.Zero(t, tm.Elapsed())
	assert.False(t, tm.Advance(0.05))
	assert.True(t, tm.Advance(0.05))
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	assert.Nil(t, q.Drain())

	q.Push(Event{Kind: EventJumped})
	q.Push(Event{Kind: EventGrounded, Grounded: true})
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []Event{
		{Kind: EventJumped},
		{Kind: EventGrounded, Grounded: true},
	}, q.Drain())
	assert.Zero(t, q.Len())

	var nilQueue *EventQueue
	nilQueue.Push(Event{Kind: EventDashed})
	assert.Zero(t, nilQueue.Len())
	assert.Nil(t, nilQueue.Drain())
}
