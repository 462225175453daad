package midi

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"

	"brat/debug"
)

// Output is the sound sink the sequencer core drives. Sends are
// fire-and-forget: errors are logged, never returned to the caller.
// NoteOff for a pitch with no sounding note is a no-op at the receiver.
type Output interface {
	NoteOn(channel, note, velocity uint8)
	NoteOff(channel, note uint8)
	ProgramChange(channel, program uint8)
}

// Virtual/system ports that are never auto-selected.
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// Synth sends to a single MIDI output port.
type Synth struct {
	portName string
	send     func(gomidi.Message) error
}

// OpenSynth resolves and opens a MIDI output port. With an empty name
// it picks the first non-virtual port. Failure here is fatal to the
// caller - there is nothing to sketch with if no synth is reachable.
func OpenSynth(portName string) (*Synth, error) {
	outPorts := gomidi.GetOutPorts()
	if len(outPorts) == 0 {
		return nil, fmt.Errorf("midi unavailable: no output ports")
	}

	for _, port := range outPorts {
		name := port.String()
		if portName != "" {
			if name != portName {
				continue
			}
		} else if isExcluded(name) {
			continue
		}

		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("midi unavailable: open %q: %w", name, err)
		}
		debug.Log("midi", "opened output port %q", name)
		return &Synth{portName: name, send: send}, nil
	}

	if portName != "" {
		return nil, fmt.Errorf("midi unavailable: no output port named %q", portName)
	}
	return nil, fmt.Errorf("midi unavailable: only virtual ports found")
}

// PortName returns the name of the opened port.
func (s *Synth) PortName() string {
	return s.portName
}

func (s *Synth) NoteOn(channel, note, velocity uint8) {
	if err := s.send(gomidi.NoteOn(channel, note, velocity)); err != nil {
		debug.Log("midi", "note on ch=%d note=%d failed: %v", channel, note, err)
	}
}

func (s *Synth) NoteOff(channel, note uint8) {
	if err := s.send(gomidi.NoteOff(channel, note)); err != nil {
		debug.Log("midi", "note off ch=%d note=%d failed: %v", channel, note, err)
	}
}

func (s *Synth) ProgramChange(channel, program uint8) {
	if err := s.send(gomidi.ProgramChange(channel, program)); err != nil {
		debug.Log("midi", "program change ch=%d prog=%d failed: %v", channel, program, err)
	}
}

// Close releases the underlying MIDI driver.
func (s *Synth) Close() {
	gomidi.CloseDriver()
}

// OutPortNames lists the available MIDI output ports.
func OutPortNames() []string {
	var names []string
	for _, port := range gomidi.GetOutPorts() {
		names = append(names, port.String())
	}
	return names
}

func isExcluded(name string) bool {
	for _, pat := range excludedPatterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	return false
}
