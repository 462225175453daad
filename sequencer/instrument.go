package sequencer

// InstrumentCatalog lists the instrument types offered by the UI, in
// menu order.
var InstrumentCatalog = []string{"Piano", "Guitar", "Synth Lead", "Bass", "Drums"}

// Instrument is one recordable track: a dedicated synth channel with a
// program applied, a note store, and a playback scheduler over it.
type Instrument struct {
	Name    string
	Channel uint8
	Program uint8

	Recording *Recording
	Playback  *Playback
}

// PickProgram maps an instrument name to its General MIDI program.
// Unknown names fall back to piano.
func PickProgram(name string) uint8 {
	switch name {
	case "Guitar":
		return 25
	case "Synth Lead":
		return 80
	case "Bass":
		return 34
	case "Drums":
		return 118
	default:
		return 0 // Piano
	}
}
