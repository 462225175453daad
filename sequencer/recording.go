package sequencer

import (
	"sync"
	"time"

	"brat/debug"
)

// NoteEvent is one captured key press: a pitch and its offset from the
// start of the recording session. Immutable once recorded.
type NoteEvent struct {
	Pitch  uint8
	Offset time.Duration
}

// Recording is an append-only log of note events for one instrument.
// Starting a new session drops everything from the previous one.
type Recording struct {
	mu        sync.Mutex
	events    []NoteEvent
	start     time.Time
	recording bool

	now func() time.Time // injectable clock
}

// NewRecording creates an empty recording store.
func NewRecording() *Recording {
	return &Recording{now: time.Now}
}

// Start begins a new session: clears all stored events and marks the
// session start on the monotonic clock.
func (r *Recording) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.start = r.now()
	r.recording = true
}

// Stop ends the session. Events stay until the next Start.
func (r *Recording) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
}

// Recording reports whether a session is active.
func (r *Recording) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Record appends a note at the current offset. No-op outside a session.
func (r *Recording) Record(pitch uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}
	offset := r.now().Sub(r.start)
	r.events = append(r.events, NoteEvent{Pitch: pitch, Offset: offset})
	debug.Log("record", "note=%d offset=%s", pitch, offset)
}

// Snapshot returns a copy of the events, safe against concurrent Record
// calls. Insertion order is time order.
func (r *Recording) Snapshot() []NoteEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NoteEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recording) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
