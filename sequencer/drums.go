package sequencer

import (
	"sync"
	"time"

	"brat/debug"
	"brat/midi"
)

// Fixed eight-step pattern: kick, hats, snare in a basic rock figure.
var (
	drumPattern    = [8]uint8{36, 42, 38, 42, 36, 46, 38, 42}
	drumVelocities = [8]uint8{127, 90, 110, 90, 127, 100, 115, 90}
)

const (
	// MinTempo and MaxTempo bound the step period.
	MinTempo = 20 * time.Millisecond
	MaxTempo = 1000 * time.Millisecond

	// DefaultTempo is the step period a fresh drum loop starts with.
	DefaultTempo = 150 * time.Millisecond

	// TempoStep is how much Faster/Slower move the period.
	TempoStep = 10 * time.Millisecond

	// drumHit is how long each drum note sounds, independent of tempo.
	drumHit = 50 * time.Millisecond
)

// DrumLoop plays the fixed percussion pattern at an adjustable step
// period. Changing tempo while running tears the ticker down and
// rebuilds it, restarting at step 0: the phase jump is a deliberate
// simplification, not a bug.
type DrumLoop struct {
	out midi.Output

	mu      sync.Mutex
	tempo   time.Duration
	running bool
	stop    chan struct{}
}

// NewDrumLoop creates a stopped drum loop at the default tempo.
func NewDrumLoop(out midi.Output) *DrumLoop {
	return &DrumLoop{out: out, tempo: DefaultTempo}
}

// Start begins the loop at step 0. No-op while already running, so a
// second Start never creates a second ticker.
func (d *DrumLoop) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.startLocked()
}

func (d *DrumLoop) startLocked() {
	if d.running {
		return
	}
	d.running = true
	d.stop = make(chan struct{})
	debug.Log("drums", "start tempo=%s", d.tempo)
	go d.run(d.tempo, d.stop)
}

// run fires one pattern step immediately, then one per period. The
// step index lives on this goroutine; note-off callbacks capture only
// the pitch, so the delayed off for one step never races the next.
func (d *DrumLoop) run(period time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	step := 0
	for {
		pitch := drumPattern[step]
		d.out.NoteOn(midi.PercussionChannel, pitch, drumVelocities[step])
		time.AfterFunc(drumHit, func() {
			d.out.NoteOff(midi.PercussionChannel, pitch)
		})
		step = (step + 1) % len(drumPattern)

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the loop. No-op when already stopped.
func (d *DrumLoop) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *DrumLoop) stopLocked() {
	if !d.running {
		return
	}
	d.running = false
	close(d.stop)
	debug.Log("drums", "stop")
}

// SetTempo clamps the period to [MinTempo, MaxTempo] and, if the loop
// is running, restarts it at the new period from step 0.
func (d *DrumLoop) SetTempo(t time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tempo = clampTempo(t)
	if d.running {
		d.stopLocked()
		d.startLocked()
	}
}

// Faster shortens the step period by one step.
func (d *DrumLoop) Faster() {
	d.SetTempo(d.Tempo() - TempoStep)
}

// Slower lengthens the step period by one step.
func (d *DrumLoop) Slower() {
	d.SetTempo(d.Tempo() + TempoStep)
}

// Tempo returns the current step period.
func (d *DrumLoop) Tempo() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tempo
}

// Running reports whether the loop is playing.
func (d *DrumLoop) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func clampTempo(t time.Duration) time.Duration {
	if t < MinTempo {
		return MinTempo
	}
	if t > MaxTempo {
		return MaxTempo
	}
	return t
}
