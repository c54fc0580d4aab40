package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/valgard/hnefatafl/square"
)

var (
	ErrInvalidLayout = errors.New("invalid layout")
)

// Bitboard holds per-piece occupancy, one Mask per piece kind. It is owned
// and mutated exclusively by Board.
type Bitboard [PieceCount]Mask

// PieceSquare is an occupied square and the piece standing on it.
type PieceSquare struct {
	Piece  Piece
	Square square.Square
}

// parseLayout decodes the row notation: piece letters A/D/K interleaved with
// decimal gap counts, rows separated by '/', top row first.
func parseLayout(layout string) (Bitboard, error) {
	var bb Bitboard

	rows := strings.Split(layout, "/")
	if len(rows) != int(BoardLength) {
		return Bitboard{}, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidLayout, BoardLength, len(rows))
	}
	for row, cells := range rows {
		col := int8(0)
		for _, cell := range cells {
			switch {
			case cell != '0' && unicode.IsDigit(cell):
				col += int8(cell - '0')
			default:
				p, ok := PieceFromSymbol(cell)
				if !ok {
					return Bitboard{}, fmt.Errorf("%w: unknown symbol %q", ErrInvalidLayout, string(cell))
				}
				sq, err := square.New(int8(row), col)
				if err != nil {
					return Bitboard{}, fmt.Errorf("%w: row %d overflows the board", ErrInvalidLayout, row+1)
				}
				bb[p] = bb[p].Union(maskCell[sq])
				col++
			}
			if col > BoardLength {
				return Bitboard{}, fmt.Errorf("%w: row %d overflows the board", ErrInvalidLayout, row+1)
			}
		}
		if col != BoardLength {
			return Bitboard{}, fmt.Errorf("%w: row %d covers %d columns", ErrInvalidLayout, row+1, col)
		}
	}

	return bb, nil
}

// All returns the union of all piece masks, the global occupancy.
func (bb *Bitboard) All() Mask {
	var all Mask
	for p := PieceKing; p < PieceCount; p++ {
		all = all.Union(bb[p])
	}
	return all
}

// Pieces lists (piece, square) pairs in ascending square order.
func (bb *Bitboard) Pieces() []PieceSquare {
	var pss []PieceSquare
	for _, sq := range bb.All().Squares() {
		for p := PieceKing; p < PieceCount; p++ {
			if bb[p].Overlaps(maskCell[sq]) {
				pss = append(pss, PieceSquare{Piece: p, Square: sq})
				break
			}
		}
	}
	return pss
}

func (bb *Bitboard) Dump() string {
	builder := strings.Builder{}
	for row := int8(0); row < BoardLength; row++ {
		for col := int8(0); col < BoardLength; col++ {
			sq, _ := square.New(row, col)
			sym := '.'
			for p := PieceKing; p < PieceCount; p++ {
				if bb[p].Overlaps(maskCell[sq]) {
					sym = p.Symbol()
					break
				}
			}
			_, _ = builder.WriteRune(sym)
		}
		_, _ = builder.WriteRune('\n')
	}
	return builder.String()
}

// Moves returns the full rook-style reach of a square independent of
// occupancy: its row and column, excluding the square itself.
func Moves(sq square.Square) Mask {
	return maskMoves[sq]
}

// Blockers returns the subset of Moves(sq) whose occupancy can change the
// reachable set under the magic-table scheme.
func Blockers(sq square.Square) Mask {
	return maskBlockers[sq]
}

// LegalMoves ray-casts outward in the four cardinal directions from sq,
// stopping exclusive at the first square in blockers. This is the reference
// path; a magic table must produce identical results.
func LegalMoves(sq square.Square, blockers Mask) Mask {
	var legal Mask
	for _, d := range rayDeltas {
		row, col := sq.Row()+d[0], sq.Col()+d[1]
		for {
			next, err := square.New(row, col)
			if err != nil {
				break
			}
			if blockers.Overlaps(maskCell[next]) {
				break
			}
			legal = legal.Union(maskCell[next])
			row, col = row+d[0], col+d[1]
		}
	}
	return legal
}
