package tetrion

// setActivePieceForTest overrides the active piece directly, bypassing the
// bag RNG, so scenario tests can pin the exact piece type, origin, and
// rotation the spec's literal examples describe.
func (t *Tetrion) setActivePieceForTest(tet Tetromino) {
	t.active = &tet
	t.refreshGhostTetromino()
}
