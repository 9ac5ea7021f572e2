// Package tetrion is the deterministic per-player simulation core of a
// falling-block puzzle engine. Given a seed, a starting frame, and a
// time-ordered stream of input events, a Tetrion advances one fixed-rate
// frame at a time and produces identical output on every machine that
// replays the same inputs.
package tetrion

// DownMovementType distinguishes a gravity-driven downward step from a
// soft-drop-driven one, since only the latter scores (spec §4.6).
type DownMovementType int

const (
	MovementGravity DownMovementType = iota
	MovementSoftDrop
)

// Tetrion is one player's playfield plus all per-player state (spec
// §3). A Tetrion is never shared between goroutines: callers running
// several in parallel own one instance per goroutine (spec §5).
type Tetrion struct {
	matrix Matrix

	active           *Tetromino
	ghost            *Tetromino
	holdPiece        *TetrominoType
	previousHold     *TetrominoType
	isHoldPossible   bool

	startFrame uint64
	nextFrame  uint64

	lastKeyState KeyState
	pendingEvents []Event

	bagsRNG    *MT19937_64
	garbageRNG *MT19937_64
	bags       *bagState

	dasState    das
	lockDelay   lockDelay
	entryDelay  entryDelay
	lineClear   lineClearDelay

	numLinesCleared  uint32
	score            uint64
	nextGravityFrame uint64
	isSoftDropping   bool

	gameOverSinceFrame *uint64

	garbageReceiveQueue []GarbageSendEvent

	playerName string

	actionHandler ActionHandler

	observers []*Observer
	id        uint8
}

// New constructs a Tetrion seeded deterministically: the same seed and
// the same event stream always produce the same simulation (spec §3's
// lifecycle, §8's determinism property).
func New(seed uint64, startFrame uint64, playerName string) *Tetrion {
	bagsRNG := NewMT19937_64(seed)
	t := &Tetrion{
		startFrame:     startFrame,
		bagsRNG:        bagsRNG,
		garbageRNG:     NewMT19937_64(seed),
		bags:           newBagState(bagsRNG),
		isHoldPossible: true,
		playerName:     playerName,
	}
	// Gravity begins at the level-0 delay measured from frame zero, not
	// offset by startFrame: see DESIGN.md's resolution of the spec §9
	// open question. This matches the literal behavior of the reference
	// implementation's constructor.
	t.nextGravityFrame = gravityDelay(0)
	t.spawnNextTetromino()
	return t
}

// PlayerName returns the opaque player-name tag supplied at construction.
func (t *Tetrion) PlayerName() string {
	return t.playerName
}

// SetActionHandler installs the callback invoked synchronously inside
// SimulateUpUntil for every emitted action (spec §6).
func (t *Tetrion) SetActionHandler(handler ActionHandler) {
	t.actionHandler = handler
}

// Matrix returns the playfield grid.
func (t *Tetrion) Matrix() *Matrix {
	return &t.matrix
}

// ActiveTetromino returns the active piece, or nil if none exists
// (spec §9: "optional active piece... nil = None").
func (t *Tetrion) ActiveTetromino() *Tetromino {
	return t.active
}

// GhostTetromino returns the projected landing position of the active
// piece, or nil if there is no active piece.
func (t *Tetrion) GhostTetromino() *Tetromino {
	return t.ghost
}

// HoldPiece returns the type currently parked in the hold slot, or nil
// if the hold slot is empty.
func (t *Tetrion) HoldPiece() *TetrominoType {
	return t.holdPiece
}

// PreviewPieces returns the six upcoming pieces, fully determined by
// the seed and the number of pieces already drawn (spec §3 invariant
// 4, §6's get_preview_pieces).
func (t *Tetrion) PreviewPieces() [6]TetrominoType {
	var result [6]TetrominoType
	for i, p := range t.bags.preview(6) {
		result[i] = p
	}
	return result
}

// PreviousHoldPiece returns the type that occupied the hold slot
// before the most recent successful hold, or nil if hold has never
// been used (spec §3).
func (t *Tetrion) PreviousHoldPiece() *TetrominoType {
	return t.previousHold
}

// LineClearDelayState returns the current line-clear animation state
// (spec §6).
func (t *Tetrion) LineClearDelayState() LineClearDelayState {
	return t.lineClear.state()
}

// Level is 1 + num_lines_cleared / 10 (spec §4.7).
func (t *Tetrion) Level() uint32 {
	return levelFor(t.numLinesCleared)
}

func (t *Tetrion) Score() uint64 {
	return t.score
}

func (t *Tetrion) NumLinesCleared() uint32 {
	return t.numLinesCleared
}

// GameOverSinceFrame returns the frame game over was set, or nil if the
// game is still running (spec §3 invariant 7).
func (t *Tetrion) GameOverSinceFrame() *uint64 {
	return t.gameOverSinceFrame
}

func (t *Tetrion) NextFrame() uint64 {
	return t.nextFrame
}

// FramesUntilGameStart is zero once next_frame has caught up to
// start_frame (spec §6).
func (t *Tetrion) FramesUntilGameStart() uint64 {
	if t.nextFrame >= t.startFrame {
		return 0
	}
	return t.startFrame - t.nextFrame
}

// GarbageQueueLength is the total number of garbage lines still queued
// to land, across every pending event (spec §6).
func (t *Tetrion) GarbageQueueLength() uint32 {
	var total uint32
	for _, e := range t.garbageReceiveQueue {
		total += e.NumLines
	}
	return total
}

func (t *Tetrion) GarbageQueueNumEvents() int {
	return len(t.garbageReceiveQueue)
}

func (t *Tetrion) GarbageQueueEvent(i int) GarbageSendEvent {
	return t.garbageReceiveQueue[i]
}

// ReceiveGarbage enqueues an incoming garbage event (spec §6's
// multiplayer ingress). It is never applied to the sending tetrion;
// only an external collaborator (the lobby) routes it here.
func (t *Tetrion) ReceiveGarbage(event GarbageSendEvent) {
	t.garbageReceiveQueue = append(t.garbageReceiveQueue, event)
}

// EnqueueEvent adds one input event to the queue. Stale events — whose
// frame has already been simulated past — are ignored per the
// documented policy (spec §7); same-frame and future events are
// accepted regardless of arrival order relative to each other, and
// callers must enqueue same-frame events in the stable order they want
// applied (spec §5).
func (t *Tetrion) EnqueueEvent(e Event) {
	if e.Frame < t.nextFrame {
		return
	}
	t.pendingEvents = append(t.pendingEvents, e)
}

func (t *Tetrion) popFrameEvents(frame uint64) []Event {
	if len(t.pendingEvents) == 0 {
		return nil
	}
	var matched, rest []Event
	for _, e := range t.pendingEvents {
		if e.Frame == frame {
			matched = append(matched, e)
		} else {
			rest = append(rest, e)
		}
	}
	t.pendingEvents = rest
	return matched
}

// SimulateUpUntil repeatedly advances the simulation one frame at a
// time until next_frame exceeds targetFrame, synthesizing each frame's
// KeyState from the enqueued event queue (spec §4.5). It returns every
// GarbageSendEvent produced along the way, in frame order.
func (t *Tetrion) SimulateUpUntil(targetFrame uint64) []GarbageSendEvent {
	var produced []GarbageSendEvent
	for t.nextFrame <= targetFrame {
		events := t.popFrameEvents(t.nextFrame)
		key := applyEvents(t.lastKeyState, events)
		if event := t.SimulateNextFrame(key); event != nil {
			produced = append(produced, *event)
		}
	}
	return produced
}

// SimulateNextFrame runs exactly one frame of the state machine, in the
// fixed order specified by spec §4.5, and returns the GarbageSendEvent
// produced this frame, if any.
func (t *Tetrion) SimulateNextFrame(key KeyState) *GarbageSendEvent {
	defer func() { t.nextFrame++ }()

	if t.isGameOver() {
		return nil
	}

	if t.lineClear.active {
		if t.lineClear.tick() {
			return t.resolveLineClear()
		}
		return nil
	}

	if t.entryDelay.active {
		if t.entryDelay.tick() {
			t.spawnNextTetromino()
		}
		return nil
	}

	t.applyExpiredGarbage()
	t.processKeys(key)
	t.applyGravity()
	t.updateLockDelay()
	t.refreshGhostTetromino()

	t.lastKeyState = key

	return nil
}

func (t *Tetrion) isGameOver() bool {
	return t.gameOverSinceFrame != nil
}

func (t *Tetrion) setGameOver() {
	if t.gameOverSinceFrame != nil {
		return
	}
	frame := t.nextFrame
	t.gameOverSinceFrame = &frame
	t.emit(Action{Kind: ActionGameOver})
}

// spawnNextTetromino draws the next piece from the bag and places it
// at the spawn position. A spawn that collides immediately is a block-
// out: game over (spec §7).
func (t *Tetrion) spawnNextTetromino() {
	next := newTetromino(t.bags.next(t.bagsRNG))
	if t.matrix.Collides(next.positions()) {
		t.setGameOver()
		return
	}
	t.active = &next
	t.isHoldPossible = true
	t.lockDelay = lockDelay{}
	t.refreshGhostTetromino()
}

// isOnSupport reports whether the active piece would collide if moved
// down by one — i.e. whether it currently rests on the stack or floor.
func (t *Tetrion) isOnSupport() bool {
	if t.active == nil {
		return false
	}
	moved := t.active.translated(0, 1)
	return t.matrix.Collides(moved.positions())
}

func (t *Tetrion) applyExpiredGarbage() {
	for len(t.garbageReceiveQueue) > 0 {
		event := t.garbageReceiveQueue[0]
		if event.SendFrame+garbageDelayFrames > t.nextFrame {
			break
		}
		t.garbageReceiveQueue = t.garbageReceiveQueue[1:]
		t.applyGarbageRows(event)
	}
}

// applyGarbageRows shifts the stack up and appends numLines full rows
// of garbage at the bottom, each with a single hole at a column
// derived from the event's hole_x_seed (spec §4.5 step 4, §4.8). The
// seed was drawn by the sender's own garbage_rng when the clear that
// produced it resolved (see resolveLineClear); deriving the hole
// columns from it here, rather than from this tetrion's own
// garbage_rng, keeps the receiving side's matrix fully reproducible
// from the event stream alone, independent of receive timing.
func (t *Tetrion) applyGarbageRows(event GarbageSendEvent) {
	n := int(event.NumLines)
	if n == 0 {
		return
	}
	holeRNG := NewMT19937_64(event.HoleXSeed)
	t.matrix.ShiftUpFromBottom(n)
	for i := Height - n; i < Height; i++ {
		t.matrix.FillRow(i, Cell{Type: TetrominoGarbage})
		hole := int(holeRNG.UintN(Width))
		t.matrix.Set(hole, i, emptyCell)
	}
	if t.matrix.OverflowsVanishZone() {
		t.setGameOver()
		return
	}
	t.refreshGhostTetromino()
}

// processKeys diffs key against lastKeyState, drives DAS, and triggers
// edge-sensitive actions (spec §4.5 step 5).
func (t *Tetrion) processKeys(key KeyState) {
	justPressedDAS := false
	for k := Key(0); k < numKeys; k++ {
		wasPressed := t.lastKeyState.isPressed(k)
		isPressed := key.isPressed(k)
		switch {
		case isPressed && !wasPressed:
			t.handleKeyPress(k)
			if keyToDirection(k) != dasNone {
				justPressedDAS = true
			}
		case !isPressed && wasPressed:
			t.handleKeyRelease(k)
		}
	}

	t.isSoftDropping = key.isPressed(KeyDown)

	// A direction that was just pressed this frame already moved once via
	// onPress; charging starts the frame after the press, so tick() is
	// skipped here on the press frame itself (spec §8 scenario 4).
	if dir := t.dasState.direction; dir != dasNone && !justPressedDAS {
		if t.dasState.tick() {
			t.moveByDirection(dir)
		}
	}
}

func (t *Tetrion) handleKeyPress(key Key) {
	switch key {
	case KeyLeft, KeyRight:
		dir := t.dasState.onPress(key)
		t.moveByDirection(dir)
	case KeyRotateCW:
		t.rotate(RotationClockwise)
	case KeyRotateCCW:
		t.rotate(RotationCounterClockwise)
	case KeyDrop:
		t.hardDrop()
	case KeyHold:
		t.hold()
	}
}

func (t *Tetrion) handleKeyRelease(key Key) {
	switch key {
	case KeyLeft, KeyRight:
		t.dasState.onRelease(key)
	}
}

func (t *Tetrion) moveByDirection(dir dasDirection) {
	switch dir {
	case dasLeft:
		t.moveLeft()
	case dasRight:
		t.moveRight()
	}
}

// moveLeft/moveRight translate the active piece by +-1 on X; a
// collision reverts the move and is a silent no-op (spec §4.6).
func (t *Tetrion) moveLeft() {
	t.tryTranslate(-1, 0, ActionMoveLeft)
}

func (t *Tetrion) moveRight() {
	t.tryTranslate(1, 0, ActionMoveRight)
}

func (t *Tetrion) tryTranslate(dx, dy int, action ActionKind) {
	if t.active == nil {
		return
	}
	candidate := t.active.translated(dx, dy)
	if t.matrix.Collides(candidate.positions()) {
		return
	}
	t.active = &candidate
	if t.isOnSupport() {
		t.lockDelay.onSuccessfulAction()
	}
	t.refreshGhostTetromino()
	t.emit(Action{Kind: action})
}

// moveDown is the single-row downward step shared by gravity and the
// DAS-independent soft-drop held-key path. Colliding marks the piece
// as on support via the caller's subsequent isOnSupport check (spec
// §4.6).
func (t *Tetrion) moveDown(movementType DownMovementType) bool {
	if t.active == nil {
		return false
	}
	candidate := t.active.translated(0, 1)
	if t.matrix.Collides(candidate.positions()) {
		return false
	}
	t.active = &candidate
	if movementType == MovementSoftDrop {
		t.score++
		t.emit(Action{Kind: ActionSoftDrop})
	} else {
		t.emit(Action{Kind: ActionMoveDown})
	}
	t.refreshGhostTetromino()
	return true
}

// applyGravity attempts one downward step when due. While soft-
// dropping the delay shortens and the move scores like a soft drop
// (spec §4.5 step 6, §4.7).
func (t *Tetrion) applyGravity() {
	if t.active == nil || t.nextFrame < t.nextGravityFrame {
		return
	}
	level := t.Level()
	delay := gravityDelay(level)
	movementType := MovementGravity
	if t.isSoftDropping {
		movementType = MovementSoftDrop
		delay = max64(1, delay/20)
	}
	if t.moveDown(movementType) {
		t.nextGravityFrame = t.nextFrame + delay
	}
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// updateLockDelay re-evaluates support each frame and freezes the
// active piece once the delay expires (spec §4.5 step 7).
func (t *Tetrion) updateLockDelay() {
	if t.active == nil {
		return
	}
	shouldLock := t.lockDelay.update(t.isOnSupport())
	if shouldLock {
		t.freezeAndDestroyActiveTetromino()
	}
}

// rotate applies the SRS wall-kick procedure (spec §4.2). On success
// the active piece adopts the new rotation/offset, lock delay is
// notified, and the corresponding action is emitted; on failure
// nothing changes and no event fires.
func (t *Tetrion) rotate(direction RotationDirection) {
	if t.active == nil {
		return
	}
	result, ok := tryRotate(&t.matrix, *t.active, direction)
	if !ok {
		return
	}
	t.active = &result
	if t.isOnSupport() {
		t.lockDelay.onSuccessfulAction()
	}
	t.refreshGhostTetromino()
	action := ActionRotateCW
	if direction == RotationCounterClockwise {
		action = ActionRotateCCW
	}
	t.emit(Action{Kind: action})
}

// hardDrop repeatedly steps the active piece down, awarding +2 score
// per row, then locks immediately, skipping lock delay entirely (spec
// §4.6).
func (t *Tetrion) hardDrop() {
	if t.active == nil {
		return
	}
	rows := 0
	for {
		candidate := t.active.translated(0, 1)
		if t.matrix.Collides(candidate.positions()) {
			break
		}
		t.active = &candidate
		rows++
	}
	t.score += uint64(rows) * 2
	t.emit(Action{Kind: ActionHardDrop})
	t.freezeAndDestroyActiveTetromino()
}

// hold swaps the active piece's type with the hold slot, or draws the
// next bag piece if the hold slot is empty, then resets the active
// piece to the spawn position and rotation. Allowed at most once per
// spawn (spec §3 invariant 5, §4.6).
func (t *Tetrion) hold() {
	if t.active == nil || !t.isHoldPossible {
		return
	}
	if t.entryDelay.active || t.lineClear.active {
		return
	}

	current := t.active.Type
	var swapped TetrominoType
	if t.holdPiece != nil {
		swapped = *t.holdPiece
	} else {
		swapped = t.bags.next(t.bagsRNG)
	}

	t.previousHold = t.holdPiece
	held := current
	t.holdPiece = &held

	replacement := newTetromino(swapped)
	if t.matrix.Collides(replacement.positions()) {
		t.setGameOver()
		return
	}
	t.active = &replacement
	t.isHoldPossible = false
	t.lockDelay = lockDelay{}
	t.refreshGhostTetromino()
	t.emit(Action{Kind: ActionHold})
}

// refreshGhostTetromino projects the active piece straight down to the
// lowest valid translation (spec §3 invariant 3, §4.5 step 8).
func (t *Tetrion) refreshGhostTetromino() {
	if t.active == nil {
		t.ghost = nil
		return
	}
	candidate := *t.active
	for {
		next := candidate.translated(0, 1)
		if t.matrix.Collides(next.positions()) {
			break
		}
		candidate = next
	}
	t.ghost = &candidate
}

// freezeAndDestroyActiveTetromino writes the active piece's four mino
// cells into the matrix, destroys it, and either starts the line-clear
// delay (if any row is now full) or goes straight to the entry delay
// (spec §4.5 step 7, §4.6's hard-drop path).
func (t *Tetrion) freezeAndDestroyActiveTetromino() {
	if t.active == nil {
		return
	}
	cell := Cell{Type: t.active.Type}
	for _, p := range t.active.positions() {
		// Collides rejects any position with p.Y < 0 before a piece is
		// ever allowed to become active, so all four cells are always
		// in-bounds here (spec §3 invariant 2: lock writes exactly 4
		// cells).
		t.matrix.Set(p.X, p.Y, cell)
	}
	t.active = nil
	t.ghost = nil
	t.lockDelay = lockDelay{}

	lines := t.determineLinesToClear()
	if len(lines) > 0 {
		t.lineClear.start(lines)
		return
	}
	t.entryDelay.start()
}

// determineLinesToClear scans the whole matrix for full rows, ascending
// by row index (spec §4.5 step 7).
func (t *Tetrion) determineLinesToClear() []int {
	var lines []int
	for y := 0; y < Height; y++ {
		if t.matrix.IsRowFull(y) {
			lines = append(lines, y)
		}
	}
	return lines
}

// resolveLineClear runs when the line-clear delay expires: it removes
// the frozen full rows, scores the clear, and starts the entry delay
// (spec §4.5 step 2, §4.7, §4.8).
func (t *Tetrion) resolveLineClear() *GarbageSendEvent {
	lines := t.lineClear.lines
	for _, y := range lines {
		t.matrix.ClearRow(y)
		t.matrix.ShiftDownAbove(y)
	}

	n := len(lines)
	t.numLinesCleared += uint32(n)
	level := t.Level()
	t.score += scoreForLinesCleared(n, level)
	t.emit(Action{Kind: ActionLineClear, LinesCleared: n})

	t.entryDelay.start()

	holeSeed := t.garbageRNG.Uint64()
	if event, ok := garbageEventForClear(n, t.nextFrame, holeSeed); ok {
		return &event
	}
	return nil
}
