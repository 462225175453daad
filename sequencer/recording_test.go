package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// testClock is a hand-advanced clock for deterministic offsets.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1000, 0)}
}

func (c *testClock) read() time.Time {
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newClockedRecording() (*Recording, *testClock) {
	clock := newTestClock()
	r := NewRecording()
	r.now = clock.read
	return r, clock
}

func TestRecordCapturesOffsets(t *testing.T) {
	r, clock := newClockedRecording()

	r.Start()
	r.Record(60)
	clock.advance(300 * time.Millisecond)
	r.Record(64)
	r.Stop()

	assert.Equal(t, []NoteEvent{
		{Pitch: 60, Offset: 0},
		{Pitch: 64, Offset: 300 * time.Millisecond},
	}, r.Snapshot())
}

func TestRecordOutsideSessionIsNoop(t *testing.T) {
	r, _ := newClockedRecording()

	r.Record(60)
	assert.Zero(t, r.Len())

	r.Start()
	r.Record(60)
	r.Stop()
	r.Record(62)
	assert.Equal(t, 1, r.Len())
}

func TestStartClearsPreviousSession(t *testing.T) {
	r, clock := newClockedRecording()

	r.Start()
	r.Record(60)
	r.Record(62)
	r.Stop()

	clock.advance(time.Second)
	r.Start()
	clock.advance(50 * time.Millisecond)
	r.Record(72)

	snap := r.Snapshot()
	assert.Equal(t, []NoteEvent{{Pitch: 72, Offset: 50 * time.Millisecond}}, snap)
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	r, _ := newClockedRecording()

	r.Start()
	r.Record(60)
	snap := r.Snapshot()
	r.Record(64)

	assert.Len(t, snap, 1, "snapshot must not see later appends")

	snap[0].Pitch = 1
	assert.Equal(t, uint8(60), r.Snapshot()[0].Pitch, "mutating a snapshot must not touch the store")
}
