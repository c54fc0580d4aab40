package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/valgard/hnefatafl/square"
)

var (
	ErrInvalidMagicAsset = errors.New("invalid magic asset")
	ErrNoMagicFound      = errors.New("no magic number found")
)

// magicShifts is the index width per square: the popcount of the square's
// blocker-relevance mask (12 interior, 13 edge, 14 corner).
var magicShifts = [TotalSquares]uint8{
	14, 13, 13, 13, 13, 13, 13, 13, 14,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	13, 12, 12, 12, 12, 12, 12, 12, 13,
	14, 13, 13, 13, 13, 13, 13, 13, 14,
}

// MagicTable maps (square, blocker pattern) to the reachable-squares mask in
// O(1) through a multiplication-based perfect hash. Built offline, immutable
// once loaded, safe to share across boards.
type MagicTable struct {
	Magics []Mask          `json:"magics"`
	Moves  []map[Mask]Mask `json:"moves"`
}

// Lookup returns the legal destination mask for a piece at sq under the given
// global occupancy. The result always equals LegalMoves over the relevant
// blockers.
func (t *MagicTable) Lookup(sq square.Square, occupancy Mask) Mask {
	relevant := maskMoves[sq].Intersect(occupancy).Intersect(maskBlockers[sq])
	index := Mask{Lo: relevant.mulIndex(t.Magics[sq], magicShifts[sq])}
	return t.Moves[sq][index].Diff(occupancy)
}

// blockerSubsets enumerates every subset of the blocker-relevance mask of sq.
func blockerSubsets(sq square.Square) []Mask {
	blockerSquares := maskBlockers[sq].Squares()
	subsets := make([]Mask, 1<<len(blockerSquares))
	for i := range subsets {
		var subset Mask
		for bit, bsq := range blockerSquares {
			if i&(1<<bit) != 0 {
				subset = subset.Union(maskCell[bsq])
			}
		}
		subsets[i] = subset
	}
	return subsets
}

const magicMaxTries = 100_000_000

// FindMagicTable searches sparse random multipliers until every square has a
// collision-free mapping from blocker pattern to move mask. This is the
// offline builder; the engine only consumes its output.
func FindMagicTable(seed uint64) (*MagicTable, error) {
	r := NewPseudoRand(seed)
	t := &MagicTable{
		Magics: make([]Mask, TotalSquares),
		Moves:  make([]map[Mask]Mask, TotalSquares),
	}
	for i := 0; i < TotalSquares; i++ {
		sq := square.Square(i)
		subsets := blockerSubsets(sq)
		reference := make([]Mask, len(subsets))
		for j, subset := range subsets {
			reference[j] = LegalMoves(sq, subset)
		}

		magic, moves, err := findMagic(r, sq, subsets, reference)
		if err != nil {
			return nil, err
		}
		t.Magics[i] = magic
		t.Moves[i] = moves
	}
	return t, nil
}

func findMagic(r *PseudoRand, sq square.Square, subsets, reference []Mask) (Mask, map[Mask]Mask, error) {
	shift := magicShifts[sq]
	for try := 0; try < magicMaxTries; try++ {
		magic := r.SparseMask()
		moves := make(map[Mask]Mask, len(subsets))
		ok := true
		for j, subset := range subsets {
			index := Mask{Lo: subset.mulIndex(magic, shift)}
			if existing, found := moves[index]; found && existing != reference[j] {
				ok = false
				break
			}
			moves[index] = reference[j]
		}
		if ok {
			return magic, moves, nil
		}
	}
	return Mask{}, nil, fmt.Errorf("%w: square %s", ErrNoMagicFound, sq)
}

// Encode writes the table as zstd-compressed JSON.
func (t *MagicTable) Encode(w io.Writer) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zw).Encode(t); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// DecodeMagicTable reads a table produced by Encode. Failures here are asset
// errors, reported distinctly from gameplay errors.
func DecodeMagicTable(r io.Reader) (*MagicTable, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMagicAsset, err)
	}
	defer zr.Close()

	t := &MagicTable{}
	if err := json.NewDecoder(zr).Decode(t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMagicAsset, err)
	}
	if len(t.Magics) != TotalSquares || len(t.Moves) != TotalSquares {
		return nil, fmt.Errorf("%w: table covers %d/%d squares", ErrInvalidMagicAsset, len(t.Magics), len(t.Moves))
	}
	return t, nil
}
