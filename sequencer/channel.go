package sequencer

import (
	"sync"

	"brat/midi"
)

// ChannelAllocator hands out synth output channels round-robin,
// skipping the reserved percussion channel. Channels are never
// released: instruments keep theirs for the life of the process, and
// indices wrap if more instruments are created than channels exist.
type ChannelAllocator struct {
	mu   sync.Mutex
	next uint8
}

// NewChannelAllocator creates an allocator starting at channel 0.
func NewChannelAllocator() *ChannelAllocator {
	return &ChannelAllocator{}
}

// Next returns the next output channel, never PercussionChannel.
func (a *ChannelAllocator) Next() uint8 {
	a.mu.Lock()
	defer a.mu.Unlock()
	for a.next == midi.PercussionChannel || a.next >= midi.NumChannels {
		a.next++
		if a.next >= midi.NumChannels {
			a.next = 0
		}
	}
	ch := a.next
	a.next++
	return ch
}
