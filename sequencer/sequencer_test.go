package sequencer

import (
	"sync"
	"testing"
	"time"
)

// fakeOutput captures timestamped signals in place of a real synth.
type fakeOutput struct {
	mu      sync.Mutex
	signals []signal
}

type signal struct {
	kind    string // "on", "off", "prog"
	channel uint8
	note    uint8
	at      time.Time
}

func (f *fakeOutput) NoteOn(channel, note, velocity uint8) { f.add("on", channel, note) }
func (f *fakeOutput) NoteOff(channel, note uint8)          { f.add("off", channel, note) }
func (f *fakeOutput) ProgramChange(channel, program uint8) { f.add("prog", channel, program) }

func (f *fakeOutput) add(kind string, channel, note uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signals = append(f.signals, signal{kind: kind, channel: channel, note: note, at: time.Now()})
}

func (f *fakeOutput) all() []signal {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]signal, len(f.signals))
	copy(out, f.signals)
	return out
}

func (f *fakeOutput) byKind(kind string) []signal {
	var out []signal
	for _, s := range f.all() {
		if s.kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeOutput) count(kind string) int {
	return len(f.byKind(kind))
}

func (f *fakeOutput) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signals = nil
}

// waitFor polls cond until it holds or the timeout passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
