package sequencer

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"brat/debug"
	"brat/midi"
)

// liveHold is how long a key-pressed note sounds. Terminals deliver no
// key-release events, so live notes get a fixed hold instead.
const liveHold = 150 * time.Millisecond

// Manager owns the synth output and every scheduling context: the
// instrument tracks, their channel allocation, and the drum loop.
type Manager struct {
	out   midi.Output
	alloc *ChannelAllocator
	drums *DrumLoop

	mu          sync.Mutex
	instruments []*Instrument

	persist   func()
	debounced func(func())

	// UpdateChan notifies the TUI of state changes.
	UpdateChan chan struct{}
}

// NewManager creates a manager over the given output.
func NewManager(out midi.Output) *Manager {
	return &Manager{
		out:        out,
		alloc:      NewChannelAllocator(),
		drums:      NewDrumLoop(out),
		debounced:  debounce.New(500 * time.Millisecond),
		UpdateChan: make(chan struct{}, 1),
	}
}

// SetPersist registers a callback saving user preferences. Calls are
// debounced so rapid tempo taps write the config file once.
func (m *Manager) SetPersist(fn func()) {
	m.persist = fn
}

// AddInstrument creates a track on the next free channel and applies
// its program to the synth.
func (m *Manager) AddInstrument(name string) *Instrument {
	ch := m.alloc.Next()
	prog := PickProgram(name)
	m.out.ProgramChange(ch, prog)

	rec := NewRecording()
	inst := &Instrument{
		Name:      name,
		Channel:   ch,
		Program:   prog,
		Recording: rec,
		Playback:  NewPlayback(m.out, ch, rec.Snapshot),
	}

	m.mu.Lock()
	m.instruments = append(m.instruments, inst)
	m.mu.Unlock()

	debug.Log("manager", "added %s ch=%d prog=%d", name, ch, prog)
	m.save()
	m.notifyUpdate()
	return inst
}

// Instruments returns a snapshot of the instrument list.
func (m *Manager) Instruments() []*Instrument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Instrument, len(m.instruments))
	copy(out, m.instruments)
	return out
}

// PlayAll starts playback on every instrument. Tracks with nothing
// recorded are skipped silently.
func (m *Manager) PlayAll() {
	for _, inst := range m.Instruments() {
		if err := inst.Playback.Play(); err != nil {
			debug.Log("manager", "play all: %s: %v", inst.Name, err)
		}
	}
	m.notifyUpdate()
}

// StopAll stops playback and looping on every instrument.
func (m *Manager) StopAll() {
	for _, inst := range m.Instruments() {
		inst.Playback.Stop()
	}
	m.notifyUpdate()
}

// Drums returns the drum loop.
func (m *Manager) Drums() *DrumLoop {
	return m.drums
}

// DrumsFaster speeds the drum loop up and persists the preference.
func (m *Manager) DrumsFaster() {
	m.drums.Faster()
	m.save()
	m.notifyUpdate()
}

// DrumsSlower slows the drum loop down and persists the preference.
func (m *Manager) DrumsSlower() {
	m.drums.Slower()
	m.save()
	m.notifyUpdate()
}

// PlayNote sounds a live note on the instrument's channel and records
// it if a session is active. The note-off comes after a fixed hold.
func (m *Manager) PlayNote(inst *Instrument, pitch uint8) {
	m.out.NoteOn(inst.Channel, pitch, PlaybackVelocity)
	ch := inst.Channel
	time.AfterFunc(liveHold, func() {
		m.out.NoteOff(ch, pitch)
	})
	inst.Recording.Record(pitch)
}

func (m *Manager) save() {
	if m.persist == nil {
		return
	}
	m.debounced(m.persist)
}

func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
