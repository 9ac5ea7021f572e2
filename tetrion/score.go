package tetrion

// lineClearBase is the base score for clearing 0..4 lines in one lock,
// indexed by line count (spec §4.7).
var lineClearBase = [5]uint64{0, 100, 300, 500, 800}

// gravityDelayByLevel is the 13-entry gravity table, clamped at the
// last entry for any level beyond its range (spec §4.7).
var gravityDelayByLevel = [13]uint64{60, 48, 37, 28, 21, 16, 11, 8, 6, 4, 3, 2, 1}

func gravityDelay(level uint32) uint64 {
	idx := int(level)
	if idx >= len(gravityDelayByLevel) {
		idx = len(gravityDelayByLevel) - 1
	}
	return gravityDelayByLevel[idx]
}

// level is 1 + num_lines_cleared / 10 (spec §4.7).
func levelFor(numLinesCleared uint32) uint32 {
	return 1 + numLinesCleared/10
}

// scoreForLinesCleared is base[n] * (level + 1) (spec §4.7).
func scoreForLinesCleared(n int, level uint32) uint64 {
	if n < 0 || n >= len(lineClearBase) {
		return 0
	}
	return lineClearBase[n] * uint64(level+1)
}
