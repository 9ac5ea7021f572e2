package tetrion

import "errors"

// errShortEvent is returned by Event.UnmarshalBinary when given fewer
// than eventWireSize bytes. This is the one place the core surfaces an
// error: decoding a caller-supplied byte slice is a boundary operation,
// not a simulation step (spec §7 only governs the simulation itself).
var errShortEvent = errors.New("tetrion: short event buffer")
