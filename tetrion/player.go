package tetrion

// Player is the capability interface both a live Tetrion and an
// Observer implement (spec §9's re-architecture of the source's
// ObpfTetrion/ObserverTetrion virtual-dispatch pair). Observers only
// receive state snapshots; they never accept input.
type Player interface {
	SimulateNextFrame(key KeyState) *GarbageSendEvent
	Observers() []*Observer
	OnClientDisconnected(clientID uint8)
	IsObserver() bool
	IsConnected() bool
	ID() uint8
}

// ID identifies this tetrion among its session's players. It defaults
// to zero, matching the reference implementation's base id().
func (t *Tetrion) ID() uint8 {
	return t.id
}

// SetID assigns this tetrion's player id within its session.
func (t *Tetrion) SetID(id uint8) {
	t.id = id
}

// Observers returns the observers currently registered against this
// tetrion.
func (t *Tetrion) Observers() []*Observer {
	return t.observers
}

// AddObserver registers o to receive this tetrion's state snapshots.
func (t *Tetrion) AddObserver(o *Observer) {
	t.observers = append(t.observers, o)
}

// OnClientDisconnected is a hook an external collaborator (the lobby)
// calls when the network peer behind this tetrion disconnects. The
// core itself has no notion of connectivity; a live Tetrion is always
// considered connected.
func (t *Tetrion) OnClientDisconnected(clientID uint8) {}

func (t *Tetrion) IsObserver() bool {
	return false
}

func (t *Tetrion) IsConnected() bool {
	return true
}

// Observer wraps a live Tetrion for read-only snapshotting: it
// forwards frame-advance calls for bookkeeping but exposes no
// mutating input methods of its own, and always reports IsObserver()
// true (spec §9).
type Observer struct {
	tetrion    *Tetrion
	connected  bool
	disconnect uint8
}

// NewObserver wraps t for snapshot-only observation.
func NewObserver(t *Tetrion) *Observer {
	o := &Observer{tetrion: t, connected: true}
	t.AddObserver(o)
	return o
}

// SimulateNextFrame mirrors the wrapped tetrion's own frame advance.
// Since only the wrapped Tetrion's simulate_next_frame algorithm
// exists (there is no second implementation, exactly as the source's
// ObserverTetrion delegates back to the same logic), the observer
// itself performs no mutation of its own: callers drive the wrapped
// tetrion directly and the observer is purely a read-only view.
func (o *Observer) SimulateNextFrame(key KeyState) *GarbageSendEvent {
	return o.tetrion.SimulateNextFrame(key)
}

func (o *Observer) Observers() []*Observer {
	return nil
}

func (o *Observer) OnClientDisconnected(clientID uint8) {
	o.connected = false
	o.disconnect = clientID
}

func (o *Observer) IsObserver() bool {
	return true
}

func (o *Observer) IsConnected() bool {
	return o.connected
}

func (o *Observer) ID() uint8 {
	return o.tetrion.ID()
}

// Matrix, Score, NumLinesCleared and Level give the observer read-only
// access to the same snapshot the wrapped tetrion exposes, without
// exporting any of its mutating methods.
func (o *Observer) Matrix() *Matrix            { return o.tetrion.Matrix() }
func (o *Observer) Score() uint64              { return o.tetrion.Score() }
func (o *Observer) NumLinesCleared() uint32    { return o.tetrion.NumLinesCleared() }
func (o *Observer) Level() uint32              { return o.tetrion.Level() }
