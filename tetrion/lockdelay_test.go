package tetrion

import "testing"

func TestLockDelayLocksAfterFullDuration(t *testing.T) {
	var l lockDelay
	for i := 0; i < lockDelayFrames-1; i++ {
		if l.update(true) {
			t.Fatalf("frame %d: wanted no lock before lockDelayFrames elapses", i)
		}
	}
	if !l.update(true) {
		t.Errorf("wanted lock exactly lockDelayFrames frames after resting on support")
	}
}

func TestLockDelayResetsWhenSupportIsLost(t *testing.T) {
	var l lockDelay
	for i := 0; i < lockDelayFrames/2; i++ {
		l.update(true)
	}
	if l.update(false) {
		t.Errorf("wanted no lock the frame support is lost")
	}
	if l.active {
		t.Errorf("wanted lock delay deactivated once support is lost")
	}
	for i := 0; i < lockDelayFrames-1; i++ {
		if l.update(true) {
			t.Fatalf("frame %d: wanted losing support to restart the counter from zero", i)
		}
	}
}

func TestLockDelaySuccessfulActionResetsCounterAndConsumesBudget(t *testing.T) {
	var l lockDelay
	l.update(true)
	l.update(true)
	l.onSuccessfulAction()
	if l.counter != 0 {
		t.Errorf("wanted counter reset to 0 after a successful action, got %d", l.counter)
	}
	if l.movesRemaining != lockDelayMaxResets-1 {
		t.Errorf("wanted movesRemaining decremented by one, got %d", l.movesRemaining)
	}
}

func TestLockDelayLocksWhenResetBudgetExhausted(t *testing.T) {
	var l lockDelay
	l.update(true)
	for i := 0; i < lockDelayMaxResets; i++ {
		l.onSuccessfulAction()
	}
	if l.movesRemaining != 0 {
		t.Fatalf("wanted movesRemaining exhausted to 0, got %d", l.movesRemaining)
	}
	if !l.update(true) {
		t.Errorf("wanted lock once the reset budget is exhausted even though counter is low")
	}
}

func TestLockDelayOnSuccessfulActionNoopWhenInactive(t *testing.T) {
	var l lockDelay
	l.onSuccessfulAction()
	if l.counter != 0 || l.movesRemaining != 0 || l.active {
		t.Errorf("wanted no effect calling onSuccessfulAction before activation, got %+v", l)
	}
}
