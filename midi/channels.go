package midi

// Synthesizer channel model.
const (
	// NumChannels is the number of output channels on the synth.
	NumChannels = 16

	// PercussionChannel is the General MIDI drum channel, reserved for
	// the drum loop and skipped by instrument allocation.
	PercussionChannel uint8 = 9
)
