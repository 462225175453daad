package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInstrumentAssignsChannelsAndPrograms(t *testing.T) {
	out := &fakeOutput{}
	m := NewManager(out)

	names := []string{"Piano", "Guitar", "Synth Lead", "Bass", "Drums"}
	for _, name := range names {
		m.AddInstrument(name)
	}

	instruments := m.Instruments()
	require.Len(t, instruments, 5)

	wantPrograms := []uint8{0, 25, 80, 34, 118}
	for i, inst := range instruments {
		assert.Equal(t, names[i], inst.Name)
		assert.Equal(t, uint8(i), inst.Channel)
		assert.Equal(t, wantPrograms[i], inst.Program)
	}

	// One program change per instrument, on its own channel.
	progs := out.byKind("prog")
	require.Len(t, progs, 5)
	for i, s := range progs {
		assert.Equal(t, uint8(i), s.channel)
		assert.Equal(t, wantPrograms[i], s.note)
	}
}

func TestAddInstrumentSkipsPercussionChannel(t *testing.T) {
	m := NewManager(&fakeOutput{})

	var channels []uint8
	for i := 0; i < 12; i++ {
		channels = append(channels, m.AddInstrument("Piano").Channel)
	}
	assert.Equal(t, []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12}, channels)
}

func TestPickProgram(t *testing.T) {
	assert.Equal(t, uint8(0), PickProgram("Piano"))
	assert.Equal(t, uint8(25), PickProgram("Guitar"))
	assert.Equal(t, uint8(80), PickProgram("Synth Lead"))
	assert.Equal(t, uint8(34), PickProgram("Bass"))
	assert.Equal(t, uint8(118), PickProgram("Drums"))
	assert.Equal(t, uint8(0), PickProgram("Theremin"), "unknown names fall back to piano")
}

func TestPlayAllSkipsEmptyRecordings(t *testing.T) {
	out := &fakeOutput{}
	m := NewManager(out)

	piano := m.AddInstrument("Piano")
	m.AddInstrument("Bass") // stays empty
	piano.Playback.sustain = 30 * time.Millisecond

	piano.Recording.Start()
	piano.Recording.Record(60)
	piano.Recording.Stop()
	out.reset() // drop the live echo and program changes

	m.PlayAll()
	require.True(t, waitFor(t, time.Second, func() bool { return out.count("off") >= 1 }))
	m.StopAll()

	for _, s := range out.all() {
		assert.Equal(t, piano.Channel, s.channel, "only the recorded track may sound")
	}
}

func TestPlayNoteEchoesAndRecords(t *testing.T) {
	out := &fakeOutput{}
	m := NewManager(out)
	inst := m.AddInstrument("Guitar")

	inst.Recording.Start()
	m.PlayNote(inst, 65)

	require.True(t, waitFor(t, time.Second, func() bool { return out.count("on") >= 1 }))
	assert.Equal(t, uint8(65), out.byKind("on")[0].note)
	assert.Equal(t, inst.Channel, out.byKind("on")[0].channel)

	// The delayed live note-off follows.
	require.True(t, waitFor(t, time.Second, func() bool { return out.count("off") >= 1 }))

	assert.Equal(t, 1, inst.Recording.Len())
	assert.Equal(t, uint8(65), inst.Recording.Snapshot()[0].Pitch)
}

func TestPlayNoteNotRecordedOutsideSession(t *testing.T) {
	m := NewManager(&fakeOutput{})
	inst := m.AddInstrument("Piano")

	m.PlayNote(inst, 60)
	assert.Zero(t, inst.Recording.Len())
}

func TestPersistIsDebounced(t *testing.T) {
	m := NewManager(&fakeOutput{})

	saves := make(chan struct{}, 16)
	m.SetPersist(func() { saves <- struct{}{} })

	for i := 0; i < 5; i++ {
		m.DrumsSlower()
	}

	select {
	case <-saves:
	case <-time.After(2 * time.Second):
		t.Fatal("persist callback never ran")
	}

	select {
	case <-saves:
		t.Fatal("rapid tempo taps must collapse into one save")
	case <-time.After(700 * time.Millisecond):
	}
}
