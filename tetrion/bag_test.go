package tetrion

import "testing"

func containsAllSeven(pieces []TetrominoType) bool {
	seen := map[TetrominoType]bool{}
	for _, p := range pieces {
		seen[p] = true
	}
	return len(seen) == 7
}

func TestNewShuffledBagIsAPermutation(t *testing.T) {
	rng := NewMT19937_64(1)
	bag := newShuffledBag(rng)
	if len(bag.pieces) != 7 {
		t.Fatalf("wanted 7 pieces, got %d", len(bag.pieces))
	}
	if !containsAllSeven(bag.pieces) {
		t.Errorf("wanted all seven tetromino types present exactly once, got %v", bag.pieces)
	}
}

func TestBagStateNextDrawsEveryPieceExactlyOncePerSevenDraws(t *testing.T) {
	rng := NewMT19937_64(7)
	bs := newBagState(rng)
	for round := 0; round < 5; round++ {
		drawn := make([]TetrominoType, 7)
		for i := range drawn {
			drawn[i] = bs.next(rng)
		}
		if !containsAllSeven(drawn) {
			t.Errorf("round %d: wanted a full permutation of seven types, got %v", round, drawn)
		}
	}
}

func TestBagStateIsDeterministic(t *testing.T) {
	rngA := NewMT19937_64(555)
	rngB := NewMT19937_64(555)
	bsA := newBagState(rngA)
	bsB := newBagState(rngB)
	for i := 0; i < 50; i++ {
		got, want := bsA.next(rngA), bsB.next(rngB)
		if got != want {
			t.Fatalf("draw %d: wanted %v, got %v", i, want, got)
		}
	}
}

func TestBagStatePreviewMatchesSubsequentDraws(t *testing.T) {
	rng := NewMT19937_64(3)
	bs := newBagState(rng)
	preview := bs.preview(6)
	if len(preview) != 6 {
		t.Fatalf("wanted 6 preview pieces, got %d", len(preview))
	}
	for i, want := range preview {
		got := bs.next(rng)
		if got != want {
			t.Errorf("draw %d: preview said %v, next() produced %v", i, want, got)
		}
	}
}

func TestBagStatePreviewDoesNotConsume(t *testing.T) {
	rng := NewMT19937_64(9)
	bs := newBagState(rng)
	first := bs.preview(6)
	second := bs.preview(6)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("index %d: wanted preview to be stable across calls, got %v then %v", i, first[i], second[i])
		}
	}
}
