package tetrion

// Lock delay tuning constants (spec §4.4).
const (
	lockDelayFrames    = 30
	lockDelayMaxResets = 15
)

// lockDelay tracks the grace period before a resting piece freezes into
// the matrix (spec §3, §4.4).
type lockDelay struct {
	active         bool
	counter        uint32
	movesRemaining uint32
}

// onSuccessfulAction is called after a movement or rotation succeeds
// while the piece is on support: the counter resets and one reset is
// consumed (spec §4.4).
func (l *lockDelay) onSuccessfulAction() {
	if !l.active {
		return
	}
	l.counter = 0
	if l.movesRemaining > 0 {
		l.movesRemaining--
	}
}

// update is called once per frame with whether the active piece
// currently rests on support. It (re)activates the delay the moment
// support is gained, resets entirely the moment support is lost, and
// reports whether the piece should lock this frame: the counter
// reached lockDelayFrames, or the reset budget is exhausted while still
// resting (spec §4.4).
func (l *lockDelay) update(onSupport bool) bool {
	if !onSupport {
		l.active = false
		l.counter = 0
		l.movesRemaining = 0
		return false
	}
	if !l.active {
		l.active = true
		l.counter = 0
		l.movesRemaining = lockDelayMaxResets
	}
	l.counter++
	return l.counter >= lockDelayFrames || l.movesRemaining == 0
}
