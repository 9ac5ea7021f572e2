package tetrion

// Bag is one shuffled permutation of the seven standard tetrominoes
// (spec §3). bag[0] is next to be drawn.
type Bag struct {
	pieces []TetrominoType
}

var sevenPieces = [7]TetrominoType{
	TetrominoI, TetrominoJ, TetrominoL, TetrominoO, TetrominoS, TetrominoT, TetrominoZ,
}

// newShuffledBag draws a fresh bag using Fisher-Yates, bottom-up: swap
// index i with a uniform draw j in [0, i] (spec §4.3's documented
// direction).
func newShuffledBag(rng *MT19937_64) Bag {
	pieces := sevenPieces
	for i := len(pieces) - 1; i > 0; i-- {
		j := int(rng.UintN(uint64(i + 1)))
		pieces[i], pieces[j] = pieces[j], pieces[i]
	}
	return Bag{pieces: append([]TetrominoType(nil), pieces[:]...)}
}

func (b *Bag) isEmpty() bool {
	return len(b.pieces) == 0
}

func (b *Bag) draw() TetrominoType {
	t := b.pieces[0]
	b.pieces = b.pieces[1:]
	return t
}

func (b *Bag) peek(i int) (TetrominoType, bool) {
	if i >= len(b.pieces) {
		return TetrominoNone, false
	}
	return b.pieces[i], true
}

// createTwoBags returns two independently shuffled bags so that six
// upcoming pieces are always known for the preview (spec §3, §4.3's
// create_two_bags).
func createTwoBags(rng *MT19937_64) [2]Bag {
	return [2]Bag{newShuffledBag(rng), newShuffledBag(rng)}
}

// bagState owns the two bags and the index of the primary one, and
// implements the swap-and-replenish rule of spec §4.3's next().
type bagState struct {
	bags  [2]Bag
	index int
}

func newBagState(rng *MT19937_64) *bagState {
	return &bagState{bags: createTwoBags(rng)}
}

// next pops the head of the primary bag. When the primary bag empties,
// the other bag becomes primary and a fresh shuffled bag replaces the
// one just consumed (spec §3 invariant, §4.3).
func (bs *bagState) next(rng *MT19937_64) TetrominoType {
	primary := &bs.bags[bs.index]
	if primary.isEmpty() {
		bs.index = 1 - bs.index
		bs.bags[1-bs.index] = newShuffledBag(rng)
		primary = &bs.bags[bs.index]
	}
	return primary.draw()
}

// preview returns the next n upcoming pieces without consuming them,
// looking across the primary bag and then the secondary bag (spec
// §3 invariant 4, §6's get_preview_pieces).
func (bs *bagState) preview(n int) []TetrominoType {
	result := make([]TetrominoType, 0, n)
	primary := bs.bags[bs.index]
	secondary := bs.bags[1-bs.index]
	for i := 0; len(result) < n && i < len(primary.pieces); i++ {
		result = append(result, primary.pieces[i])
	}
	for i := 0; len(result) < n && i < len(secondary.pieces); i++ {
		result = append(result, secondary.pieces[i])
	}
	return result
}
