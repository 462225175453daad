package sequencer

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"brat/debug"
	"brat/midi"
)

// Sustain is how long each played-back note sounds before its note-off,
// regardless of when the next event lands. Retriggers overlap.
const Sustain = 500 * time.Millisecond

// PlaybackVelocity is the fixed velocity for played-back notes.
const PlaybackVelocity uint8 = 100

// ErrEmptyRecording is returned by Play when there is nothing to play.
var ErrEmptyRecording = errors.New("no notes recorded")

// Playback schedules timed note-on/note-off signals from a recording
// snapshot. Each Play replaces the previous session's pending timers;
// notes that already fired are never retracted, so back-to-back plays
// overlap audibly. That overlap is intentional.
type Playback struct {
	out     midi.Output
	channel uint8
	source  func() []NoteEvent

	mu      sync.Mutex
	session *playbackSession
	looping bool
	sustain time.Duration // Sustain, shortened in tests
}

// A playbackSession owns the pending timers of one Play invocation.
// Cancelling stops what has not fired yet; in-flight firings check the
// session identity and no-op if superseded.
type playbackSession struct {
	id     string
	timers []*time.Timer
}

// NewPlayback creates a playback scheduler that reads fresh snapshots
// from source and sends to the given synth channel.
func NewPlayback(out midi.Output, channel uint8, source func() []NoteEvent) *Playback {
	return &Playback{
		out:     out,
		channel: channel,
		source:  source,
		sustain: Sustain,
	}
}

// Play schedules a fresh snapshot. Returns ErrEmptyRecording if there
// is nothing to play; no scheduling happens in that case.
func (p *Playback) Play() error {
	snapshot := p.source()
	if len(snapshot) == 0 {
		return ErrEmptyRecording
	}
	p.schedule(snapshot)
	return nil
}

// schedule cancels the previous session's timers (loop flag untouched)
// and arms a new session for the given snapshot. If looping, one extra
// timer at the track end re-runs Play with a snapshot read at that
// later time, so a recording started meanwhile is what loops next.
func (p *Playback) schedule(snapshot []NoteEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scheduleLocked(snapshot)
}

func (p *Playback) scheduleLocked(snapshot []NoteEvent) {
	p.cancelSessionLocked()

	s := &playbackSession{id: uuid.NewString()[:8]}
	p.session = s

	var trackLen time.Duration
	for _, e := range snapshot {
		pitch := e.Pitch
		if e.Offset+p.sustain > trackLen {
			trackLen = e.Offset + p.sustain
		}
		s.timers = append(s.timers,
			time.AfterFunc(e.Offset, func() {
				p.out.NoteOn(p.channel, pitch, PlaybackVelocity)
			}),
			time.AfterFunc(e.Offset+p.sustain, func() {
				p.out.NoteOff(p.channel, pitch)
			}),
		)
	}

	debug.Log("playback", "session=%s ch=%d notes=%d track=%s loop=%v",
		s.id, p.channel, len(snapshot), trackLen, p.looping)

	if p.looping {
		s.timers = append(s.timers, time.AfterFunc(trackLen, func() {
			p.refire(s)
		}))
	}
}

// refire is the loop timer body: replay only if looping is still on and
// the session was not replaced in the meantime. The check and the
// rescheduling share one lock acquisition so a concurrent Stop cannot
// slip between them.
func (p *Playback) refire(s *playbackSession) {
	snapshot := p.source()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.looping || p.session != s || len(snapshot) == 0 {
		return
	}
	p.scheduleLocked(snapshot)
}

// Stop disables looping and cancels all pending timers. Safe to call
// when nothing is scheduled, and safe to call twice.
func (p *Playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.looping = false
	p.cancelSessionLocked()
}

// cancelSessionLocked tears down the current session without touching
// the loop flag. Callers hold p.mu.
func (p *Playback) cancelSessionLocked() {
	if p.session == nil {
		return
	}
	for _, t := range p.session.timers {
		t.Stop()
	}
	debug.Log("playback", "session=%s cancelled", p.session.id)
	p.session = nil
}

// SetLooping sets the loop flag. Orthogonal to any running session:
// toggling off lets an armed loop timer expire without replaying.
func (p *Playback) SetLooping(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.looping = v
}

// Looping reports the loop flag.
func (p *Playback) Looping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.looping
}
