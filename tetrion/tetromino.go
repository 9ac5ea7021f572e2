package tetrion

// Rotation is one of the four SRS orientations.
type Rotation uint8

const (
	RotationNorth Rotation = iota
	RotationEast
	RotationSouth
	RotationWest
	numRotations
)

func (r Rotation) clockwise() Rotation {
	return (r + 1) % numRotations
}

func (r Rotation) counterClockwise() Rotation {
	return (r + numRotations - 1) % numRotations
}

// Tetromino is the active, ghost, or hold-preview piece: a type, an
// origin, and a rotation state (spec §3).
type Tetromino struct {
	Type     TetrominoType
	Origin   Vec2
	Rotation Rotation
}

var spawnPosition = Vec2{X: 3, Y: 0}

func newTetromino(t TetrominoType) Tetromino {
	return Tetromino{Type: t, Origin: spawnPosition, Rotation: RotationNorth}
}

// minoOffsets is the static shape table indexed by (type, rotation),
// relative to origin (spec §4.2). Values follow the SRS guideline
// orientations in a top-left-origin mino table: the I piece spans a 4x4
// bounding box, the O piece occupies columns 1-2 of rows 0-1 in every
// rotation, and J, L, S, T, Z fit a 3x3 box.
var minoOffsets = map[TetrominoType][4][4]Vec2{
	TetrominoI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	TetrominoJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {0, 2}},
	},
	TetrominoL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	TetrominoO: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	TetrominoS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	TetrominoT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	TetrominoZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
}

// MinoOffsets returns the four offsets relative to origin for (type,
// rotation) (spec §4.2's mino_offsets).
func MinoOffsets(t TetrominoType, rotation Rotation) [4]Vec2 {
	return minoOffsets[t][rotation]
}

// ApplyOffsets translates each of the four offsets by origin (spec
// §4.2's apply).
func ApplyOffsets(origin Vec2, offsets [4]Vec2) [4]Vec2 {
	var result [4]Vec2
	for i, o := range offsets {
		result[i] = Vec2{X: origin.X + o.X, Y: origin.Y + o.Y}
	}
	return result
}

// MinoPositions returns the four absolute mino cells of t (spec §3's
// get_mino_positions).
func MinoPositions(t Tetromino) [4]Vec2 {
	return ApplyOffsets(t.Origin, MinoOffsets(t.Type, t.Rotation))
}

func (t Tetromino) positions() [4]Vec2 {
	return MinoPositions(t)
}

func (t Tetromino) translated(dx, dy int) Tetromino {
	t.Origin.X += dx
	t.Origin.Y += dy
	return t
}

func (t Tetromino) rotated(rotation Rotation) Tetromino {
	t.Rotation = rotation
	return t
}
