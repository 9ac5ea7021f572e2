package tetrion

// lineClearDelayFrames is the animation window a full set of rows waits
// in before being physically removed (spec §3, §4.4, "LineClearDelay").
const lineClearDelayFrames = 20

// LineClearDelayState is the read-only snapshot exposed at the boundary
// (spec §6's line_clear_delay_state): up to four row indices, the
// current countdown, and the fixed delay constant.
type LineClearDelayState struct {
	Lines     []int
	Countdown uint32
	Delay     uint32
}

// lineClearDelay freezes the board during the clear animation: the
// matrix retains the full rows and no active piece exists until the
// countdown reaches zero (spec §3, §4.4).
type lineClearDelay struct {
	active    bool
	lines     []int // row indices, at most 4, ascending
	countdown uint32
}

func (l *lineClearDelay) start(lines []int) {
	l.active = true
	l.lines = append([]int(nil), lines...)
	l.countdown = lineClearDelayFrames
}

// tick counts the delay down by one frame and reports whether it has
// just expired this frame (spec §4.5 step 2).
func (l *lineClearDelay) tick() bool {
	if !l.active {
		return false
	}
	l.countdown--
	if l.countdown == 0 {
		l.active = false
		return true
	}
	return false
}

func (l *lineClearDelay) state() LineClearDelayState {
	return LineClearDelayState{
		Lines:     append([]int(nil), l.lines...),
		Countdown: l.countdown,
		Delay:     lineClearDelayFrames,
	}
}
