package tetrion

// Width and Height are the playfield dimensions (spec §3, §6). The top
// two rows are the vanish zone, where pieces spawn and which is not
// normally displayed.
const (
	Width       = 10
	Height      = 22
	VanishRows  = 2
	VisibleRows = Height - VanishRows
)

// TetrominoType tags a filled Cell for both collision and color. Garbage
// cells are spawned only by incoming garbage, never by a piece lock
// (spec §3).
type TetrominoType uint8

const (
	TetrominoNone TetrominoType = iota
	TetrominoI
	TetrominoJ
	TetrominoL
	TetrominoO
	TetrominoS
	TetrominoT
	TetrominoZ
	TetrominoGarbage
)

// Cell is Empty when its TetrominoType is TetrominoNone.
type Cell struct {
	Type TetrominoType
}

var emptyCell = Cell{Type: TetrominoNone}

func (c Cell) IsEmpty() bool {
	return c.Type == TetrominoNone
}

// Vec2 is an absolute or relative (x, y) position in matrix space,
// origin top-left (spec §3).
type Vec2 struct {
	X, Y int
}

// Matrix is the fixed Width x Height playfield grid (spec §4.1). All
// out-of-bounds accesses via Get/Set are programmer errors; the core
// never performs one itself — it reads or writes cells only at
// positions Collides has accepted or inside loops bounded by Width and
// Height.
type Matrix struct {
	cells [Height][Width]Cell
}

// Get returns the cell at (x, y). Out-of-bounds access is a contract
// violation (spec §3 invariant); callers must check bounds (e.g. via
// Collides) before calling.
func (m *Matrix) Get(x, y int) Cell {
	return m.cells[y][x]
}

func (m *Matrix) Set(x, y int, cell Cell) {
	m.cells[y][x] = cell
}

func (m *Matrix) IsEmpty(x, y int) bool {
	return m.Get(x, y).IsEmpty()
}

// Collides reports whether any of the four given positions is
// out-of-bounds horizontally, vertically, or overlapping a non-empty
// cell. The vanish zone is rows [0, VanishRows) of the same Height-row
// array OverflowsVanishZone scans — there is no additional headroom
// above row 0; a kick that would place a mino at y < 0 is a collision,
// same as one below the floor.
func (m *Matrix) Collides(positions [4]Vec2) bool {
	for _, p := range positions {
		if p.X < 0 || p.X >= Width {
			return true
		}
		if p.Y < 0 || p.Y >= Height {
			return true
		}
		if !m.IsEmpty(p.X, p.Y) {
			return true
		}
	}
	return false
}

// FillRow sets every cell in row y to cell.
func (m *Matrix) FillRow(y int, cell Cell) {
	for x := 0; x < Width; x++ {
		m.cells[y][x] = cell
	}
}

// ClearRow resets every cell in row y to empty.
func (m *Matrix) ClearRow(y int) {
	m.FillRow(y, emptyCell)
}

// ShiftDownAbove moves every row in 0..y down by one and clears row 0,
// the collapse step after a line clear (spec §4.1).
func (m *Matrix) ShiftDownAbove(y int) {
	for row := y; row > 0; row-- {
		m.cells[row] = m.cells[row-1]
	}
	m.cells[0] = [Width]Cell{}
}

// IsRowFull reports whether every cell in row y is filled.
func (m *Matrix) IsRowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if m.IsEmpty(x, y) {
			return false
		}
	}
	return true
}

// ShiftUpFromBottom moves every row up by n and empties the bottom n
// rows, making room for incoming garbage rows appended at the floor
// (spec §4.5 step 4). Rows that scroll above row 0 are lost; the caller
// is responsible for
// detecting the resulting overflow and setting game over.
func (m *Matrix) ShiftUpFromBottom(n int) {
	if n <= 0 {
		return
	}
	if n >= Height {
		m.cells = [Height][Width]Cell{}
		return
	}
	for row := 0; row < Height-n; row++ {
		m.cells[row] = m.cells[row+n]
	}
	for row := Height - n; row < Height; row++ {
		m.cells[row] = [Width]Cell{}
	}
}

// OverflowsVanishZone reports whether any cell above the visible
// playfield (inside rows [0, VanishRows)) is filled — the overflow
// condition that sets game over per spec §7.
func (m *Matrix) OverflowsVanishZone() bool {
	for y := 0; y < VanishRows; y++ {
		for x := 0; x < Width; x++ {
			if !m.IsEmpty(x, y) {
				return true
			}
		}
	}
	return false
}
