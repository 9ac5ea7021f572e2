package tetrion

// RotationDirection is the direction a rotate request turns the active
// piece (spec §4.2).
type RotationDirection int

const (
	RotationClockwise RotationDirection = iota
	RotationCounterClockwise
)

// kickTransition keys the SRS wall-kick tables by (from, to) rotation
// pair.
type kickTransition struct {
	from, to Rotation
}

// srsKicksOthers is the shared wall-kick table for J, L, S, T, Z (spec
// §4.2: "others share a table"). Offsets are tried in order; the first
// that doesn't collide wins.
var srsKicksOthers = map[kickTransition][]Vec2{
	{RotationNorth, RotationEast}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{RotationEast, RotationNorth}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{RotationEast, RotationSouth}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{RotationSouth, RotationEast}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{RotationSouth, RotationWest}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{RotationWest, RotationSouth}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{RotationWest, RotationNorth}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{RotationNorth, RotationWest}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
}

// srsKicksI is the I-piece's own wall-kick table (spec §4.2: "I-piece
// uses its own table").
var srsKicksI = map[kickTransition][]Vec2{
	{RotationNorth, RotationEast}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{RotationEast, RotationNorth}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{RotationEast, RotationSouth}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{RotationSouth, RotationEast}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{RotationSouth, RotationWest}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{RotationWest, RotationSouth}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{RotationWest, RotationNorth}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{RotationNorth, RotationWest}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

// srsKicksO is empty and not consulted: kickCandidates returns the
// O-piece's single zero offset directly, since O never needs a kick
// (spec §4.2).
var srsKicksO = map[kickTransition][]Vec2{}

func kickCandidates(t TetrominoType, from, to Rotation) []Vec2 {
	key := kickTransition{from, to}
	switch t {
	case TetrominoI:
		if offsets, ok := srsKicksI[key]; ok {
			return offsets
		}
	case TetrominoO:
		return []Vec2{{0, 0}}
	default:
		if offsets, ok := srsKicksOthers[key]; ok {
			return offsets
		}
	}
	return []Vec2{{0, 0}}
}

// tryRotate computes the target rotation for direction and iterates
// candidate kick offsets in order, returning the first resulting
// tetromino whose positions don't collide (spec §4.2's rotation
// procedure). ok is false if every candidate collided, in which case
// the returned tetromino is the unmodified input.
func tryRotate(m *Matrix, t Tetromino, direction RotationDirection) (Tetromino, bool) {
	var target Rotation
	if direction == RotationClockwise {
		target = t.Rotation.clockwise()
	} else {
		target = t.Rotation.counterClockwise()
	}

	for _, offset := range kickCandidates(t.Type, t.Rotation, target) {
		candidate := t.rotated(target).translated(offset.X, offset.Y)
		if !m.Collides(candidate.positions()) {
			return candidate, true
		}
	}
	return t, false
}
