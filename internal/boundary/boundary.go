// Package boundary realizes the handle-oriented API external collaborators
// (a renderer, a network layer, scripting bindings) use to drive a tetrion
// without holding a Go pointer to it directly — the same shape as the
// reference implementation's create/destroy-by-handle C API, minus cgo.
package boundary

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/OpenTetrisProtocolFoundation/simulator/tetrion"
)

// Handle is an opaque reference to a live tetrion. The zero Handle is never
// issued by Create and is always invalid.
type Handle uint64

var (
	registry   sync.Map // Handle -> *tetrion.Tetrion
	nextHandle atomic.Uint64
)

// ErrUnknownHandle is returned by every operation given a Handle that was
// never issued by Create, or that has already been destroyed.
var ErrUnknownHandle = fmt.Errorf("boundary: unknown handle")

// Create constructs a tetrion and returns a handle to it.
func Create(seed uint64, startFrame uint64, playerName string) Handle {
	h := Handle(nextHandle.Add(1))
	registry.Store(h, tetrion.New(seed, startFrame, playerName))
	return h
}

// Destroy releases the tetrion behind h. Destroying an unknown handle is a
// no-op.
func Destroy(h Handle) {
	registry.Delete(h)
}

func lookup(h Handle) (*tetrion.Tetrion, error) {
	v, ok := registry.Load(h)
	if !ok {
		return nil, fmt.Errorf("boundary: handle %d: %w", h, ErrUnknownHandle)
	}
	return v.(*tetrion.Tetrion), nil
}

// SimulateUpUntil advances the tetrion behind h to frame and returns every
// garbage event it produced along the way.
func SimulateUpUntil(h Handle, frame uint64) ([]tetrion.GarbageSendEvent, error) {
	t, err := lookup(h)
	if err != nil {
		return nil, err
	}
	return t.SimulateUpUntil(frame), nil
}

// EnqueueEvent queues one input event against the tetrion behind h.
func EnqueueEvent(h Handle, e tetrion.Event) error {
	t, err := lookup(h)
	if err != nil {
		return err
	}
	t.EnqueueEvent(e)
	return nil
}

// SetActionHandler installs the callback invoked for every action the
// tetrion behind h emits.
func SetActionHandler(h Handle, handler tetrion.ActionHandler) error {
	t, err := lookup(h)
	if err != nil {
		return err
	}
	t.SetActionHandler(handler)
	return nil
}

// ReceiveGarbage enqueues an incoming garbage event against the tetrion
// behind h, the multiplayer ingress an external collaborator (internal/lobby)
// drives.
func ReceiveGarbage(h Handle, event tetrion.GarbageSendEvent) error {
	t, err := lookup(h)
	if err != nil {
		return err
	}
	t.ReceiveGarbage(event)
	return nil
}

// Snapshot is the read-only view of a tetrion's state an external
// collaborator needs each frame, gathering the individual accessors spec §6
// exposes one at a time into a single call.
type Snapshot struct {
	Matrix             *tetrion.Matrix
	Active             *tetrion.Tetromino
	Ghost              *tetrion.Tetromino
	HoldPiece          *tetrion.TetrominoType
	PreviewPieces      [6]tetrion.TetrominoType
	LineClearDelay     tetrion.LineClearDelayState
	Level              uint32
	Score              uint64
	NumLinesCleared    uint32
	GameOverSinceFrame *uint64
	NextFrame          uint64
	FramesUntilStart   uint64
}

// GetSnapshot gathers a read-only view of the tetrion behind h.
func GetSnapshot(h Handle) (Snapshot, error) {
	t, err := lookup(h)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Matrix:             t.Matrix(),
		Active:             t.ActiveTetromino(),
		Ghost:              t.GhostTetromino(),
		HoldPiece:          t.HoldPiece(),
		PreviewPieces:      t.PreviewPieces(),
		LineClearDelay:     t.LineClearDelayState(),
		Level:              t.Level(),
		Score:              t.Score(),
		NumLinesCleared:    t.NumLinesCleared(),
		GameOverSinceFrame: t.GameOverSinceFrame(),
		NextFrame:          t.NextFrame(),
		FramesUntilStart:   t.FramesUntilGameStart(),
	}, nil
}
