package tetrion

import "encoding/binary"

// Key is one of the seven inputs the core understands (spec §6).
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyDown
	KeyDrop
	KeyRotateCW
	KeyRotateCCW
	KeyHold
	numKeys
)

// EventType marks whether an Event is a key-down or key-up transition.
type EventType uint8

const (
	EventPressed EventType = iota
	EventReleased
)

// Event is one (key, transition, frame) triple from the caller's input
// stream (spec §6). The wire format is little-endian packed
// {u8 key, u8 type, u64 frame}, matching a replay file written by an
// external collaborator.
type Event struct {
	Key   Key
	Type  EventType
	Frame uint64
}

const eventWireSize = 10

// MarshalBinary packs an Event into the ten-byte little-endian wire
// format described in spec §6.
func (e Event) MarshalBinary() ([]byte, error) {
	buf := make([]byte, eventWireSize)
	buf[0] = byte(e.Key)
	buf[1] = byte(e.Type)
	binary.LittleEndian.PutUint64(buf[2:], e.Frame)
	return buf, nil
}

// UnmarshalBinary reads an Event back out of its wire format.
func (e *Event) UnmarshalBinary(data []byte) error {
	if len(data) < eventWireSize {
		return errShortEvent
	}
	e.Key = Key(data[0])
	e.Type = EventType(data[1])
	e.Frame = binary.LittleEndian.Uint64(data[2:])
	return nil
}

// KeyState is a snapshot of which keys are currently held, synthesized by
// collapsing the enqueued events for one frame onto the previous
// KeyState (spec §4.5, §9: "KeyState is reconstructed rather than stored
// per-frame").
type KeyState struct {
	pressed [numKeys]bool
}

func (k KeyState) isPressed(key Key) bool {
	return k.pressed[key]
}

func (k KeyState) with(key Key, pressed bool) KeyState {
	k.pressed[key] = pressed
	return k
}

// applyEvents folds a batch of same-frame events onto a KeyState in
// arrival order, per spec §5's ordering guarantee.
func applyEvents(state KeyState, events []Event) KeyState {
	for _, e := range events {
		state = state.with(e.Key, e.Type == EventPressed)
	}
	return state
}
