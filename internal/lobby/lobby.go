// Package lobby is the external collaborator that pairs two tetrions into a
// session and carries each one's outgoing garbage toward the other. It is
// allowed to be concurrent — unlike the core, which never runs on more than
// one goroutine at a time per instance. A tetrion is still only ever
// mutated by the one goroutine that owns it: lobby hands garbage events
// across goroutines through a channel, the receiving goroutine's own call
// to DrainToA/DrainToB returns them, and that goroutine then applies each
// one itself via receive_garbage.
package lobby

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/OpenTetrisProtocolFoundation/simulator/tetrion"
)

// Config configures a Lobby. The zero Config is valid; GarbageQueueSize
// defaults to 16 when unset.
type Config struct {
	GarbageQueueSize int
}

func (c Config) withDefaults() Config {
	if c.GarbageQueueSize <= 0 {
		c.GarbageQueueSize = 16
	}
	return c
}

// session carries each side's outgoing garbage toward the other over a
// buffered channel, mirroring the teacher's game struct (p1Ch/p2Ch) but
// over tetrion.GarbageSendEvent instead of proto.GameMessage.
type session struct {
	toB, toA     chan tetrion.GarbageSendEvent
	aConn, bConn bool
}

func newSession(queueSize int) *session {
	return &session{
		toB: make(chan tetrion.GarbageSendEvent, queueSize),
		toA: make(chan tetrion.GarbageSendEvent, queueSize),
	}
}

// Lobby pairs tetrions into two-player sessions identified by a generated
// ID, the same shape as server.tetrisServer's gameInstance map keyed by a
// uuid-generated game ID.
type Lobby struct {
	mu       sync.Mutex
	sessions map[string]*session
	cfg      Config
}

// New constructs an empty Lobby.
func New(cfg Config) *Lobby {
	return &Lobby{
		sessions: make(map[string]*session),
		cfg:      cfg.withDefaults(),
	}
}

// Pair opens a new session and returns its ID. Pair only wires the
// garbage-routing plumbing; the caller remains responsible for driving each
// tetrion's own simulation loop on its own goroutine.
func (l *Lobby) Pair() string {
	id := uuid.New().String()
	l.mu.Lock()
	l.sessions[id] = newSession(l.cfg.GarbageQueueSize)
	l.mu.Unlock()
	return id
}

// ErrUnknownSession is returned by any Lobby operation given an ID Pair
// never issued, or one already closed.
var ErrUnknownSession = fmt.Errorf("lobby: unknown session")

func (l *Lobby) session(id string) (*session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sessions[id]
	if !ok {
		return nil, fmt.Errorf("lobby: session %q: %w", id, ErrUnknownSession)
	}
	return s, nil
}

// SendFromA queues events — the garbage player A's own simulate_up_until
// call just produced — for delivery toward player B. A full queue drops the
// oldest undelivered event rather than blocking A's simulation goroutine.
func (l *Lobby) SendFromA(id string, events []tetrion.GarbageSendEvent) error {
	s, err := l.session(id)
	if err != nil {
		return err
	}
	enqueue(s.toB, events)
	return nil
}

// SendFromB is SendFromA with the pairing reversed.
func (l *Lobby) SendFromB(id string, events []tetrion.GarbageSendEvent) error {
	s, err := l.session(id)
	if err != nil {
		return err
	}
	enqueue(s.toA, events)
	return nil
}

func enqueue(ch chan tetrion.GarbageSendEvent, events []tetrion.GarbageSendEvent) {
	for _, e := range events {
		select {
		case ch <- e:
		default:
			<-ch
			ch <- e
		}
	}
}

// DrainToA returns every event currently queued for player A, in send
// order, without blocking. The caller — the goroutine that owns player A's
// tetrion — is responsible for applying each one via receive_garbage.
func (l *Lobby) DrainToA(id string) ([]tetrion.GarbageSendEvent, error) {
	s, err := l.session(id)
	if err != nil {
		return nil, err
	}
	return drain(s.toA), nil
}

// DrainToB is DrainToA with the pairing reversed.
func (l *Lobby) DrainToB(id string) ([]tetrion.GarbageSendEvent, error) {
	s, err := l.session(id)
	if err != nil {
		return nil, err
	}
	return drain(s.toB), nil
}

func drain(ch chan tetrion.GarbageSendEvent) []tetrion.GarbageSendEvent {
	var events []tetrion.GarbageSendEvent
	for {
		select {
		case e := <-ch:
			events = append(events, e)
		default:
			return events
		}
	}
}

// SetConnected records whether a session's two players are present, the
// same connected-flag bookkeeping server.game's p1conn/p2conn pair
// implements for NewGame's wait loop.
func (l *Lobby) SetConnected(id string, aConnected, bConnected bool) error {
	s, err := l.session(id)
	if err != nil {
		return err
	}
	l.mu.Lock()
	s.aConn, s.bConn = aConnected, bConnected
	l.mu.Unlock()
	return nil
}

// IsStarted reports whether both players of a session are connected.
func (l *Lobby) IsStarted(id string) (bool, error) {
	s, err := l.session(id)
	if err != nil {
		return false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return s.aConn && s.bConn, nil
}

// Close releases a session's bookkeeping. The two tetrions themselves are
// unaffected; only the routing between them ends.
func (l *Lobby) Close(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, id)
}
