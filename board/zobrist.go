package board

import (
	"errors"
	"fmt"

	"github.com/valgard/hnefatafl/square"
)

const zobristTableLength = int(PieceCount) * TotalSquares

var (
	ErrZobristCollision = errors.New("zobrist key collision")
)

// ZobristTable holds one independent 64-bit key per (piece, square) pair.
// Immutable after construction; safe to share across boards.
type ZobristTable struct {
	keys [zobristTableLength]uint64
}

// NewZobristTable draws the keys from a seeded xorshift generator. Key
// uniqueness is validated rather than structurally guaranteed: a collision
// would silently merge two positions, so it fails construction.
func NewZobristTable(seed uint64) (*ZobristTable, error) {
	t := &ZobristTable{}
	r := NewPseudoRand(seed)
	seen := make(map[uint64]struct{}, zobristTableLength)
	for i := range t.keys {
		key := r.Uint64()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: seed %d", ErrZobristCollision, seed)
		}
		seen[key] = struct{}{}
		t.keys[i] = key
	}
	return t, nil
}

// Key returns the key for a (piece, square) pair.
func (t *ZobristTable) Key(p Piece, sq square.Square) uint64 {
	return t.keys[int(p)*TotalSquares+sq.Index()]
}
