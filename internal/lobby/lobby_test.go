package lobby

import (
	"errors"
	"testing"

	"github.com/OpenTetrisProtocolFoundation/simulator/tetrion"
)

func TestPairRoutesGarbageBothWays(t *testing.T) {
	l := New(Config{})
	id := l.Pair()

	sent := []tetrion.GarbageSendEvent{{NumLines: 2, SendFrame: 0, HoleXSeed: 1}}
	if err := l.SendFromA(id, sent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := l.DrainToB(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != sent[0] {
		t.Fatalf("wanted %v delivered to B, got %v", sent, got)
	}

	// draining again finds nothing left.
	got, err = l.DrainToB(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("wanted an empty drain after the queue was emptied, got %v", got)
	}

	if err := l.SendFromB(id, sent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = l.DrainToA(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != sent[0] {
		t.Fatalf("wanted %v delivered to A, got %v", sent, got)
	}
}

func TestUnknownSessionOperations(t *testing.T) {
	l := New(Config{})
	const unknown = "does-not-exist"

	if err := l.SendFromA(unknown, nil); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("wanted ErrUnknownSession from SendFromA, got %v", err)
	}
	if _, err := l.DrainToA(unknown); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("wanted ErrUnknownSession from DrainToA, got %v", err)
	}
	if _, err := l.IsStarted(unknown); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("wanted ErrUnknownSession from IsStarted, got %v", err)
	}
}

func TestSetConnectedAndIsStarted(t *testing.T) {
	l := New(Config{})
	id := l.Pair()

	started, err := l.IsStarted(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started {
		t.Fatalf("wanted a fresh session to report not started")
	}

	if err := l.SetConnected(id, true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	started, _ = l.IsStarted(id)
	if started {
		t.Errorf("wanted not started with only one side connected")
	}

	if err := l.SetConnected(id, true, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	started, _ = l.IsStarted(id)
	if !started {
		t.Errorf("wanted started once both sides are connected")
	}
}

func TestCloseRemovesSession(t *testing.T) {
	l := New(Config{})
	id := l.Pair()
	l.Close(id)

	if _, err := l.IsStarted(id); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("wanted ErrUnknownSession after Close, got %v", err)
	}
}

func TestFullQueueDropsOldestRatherThanBlocking(t *testing.T) {
	l := New(Config{GarbageQueueSize: 2})
	id := l.Pair()

	events := []tetrion.GarbageSendEvent{
		{NumLines: 1, SendFrame: 0},
		{NumLines: 2, SendFrame: 1},
		{NumLines: 3, SendFrame: 2},
	}
	if err := l.SendFromA(id, events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := l.DrainToB(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("wanted the queue capped at 2 events, got %d", len(got))
	}
	if got[0].SendFrame != 1 || got[1].SendFrame != 2 {
		t.Errorf("wanted the oldest event dropped, got send frames %d, %d", got[0].SendFrame, got[1].SendFrame)
	}
}
