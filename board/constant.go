package board

import (
	"github.com/valgard/hnefatafl/square"
)

const (
	BoardLength  = int8(square.BoardLength)
	TotalSquares = int(square.TotalSquares)

	DefaultStartingLayout = "3AAA3/4A4/4D4/A3D3A/AADDKDDAA/A3D3A/4D4/4A4/3AAA3 B"
	EmptyLayout           = "9/9/9/9/9/9/9/9/9 B"
)

var (
	maskCell [TotalSquares]Mask
	maskRow  [BoardLength]Mask
	maskCol  [BoardLength]Mask

	// maskMoves is the unblocked rook reach per square: its full row and
	// column excluding the square itself.
	maskMoves [TotalSquares]Mask

	// maskBlockers is the occupancy-relevant subset of maskMoves used for
	// magic indexing: each ray minus its board-edge terminal square.
	maskBlockers [TotalSquares]Mask

	// maskAdjacent and maskInterjacent are the orthogonal neighborhoods at
	// distance one and two, clipped to the board.
	maskAdjacent    [TotalSquares]Mask
	maskInterjacent [TotalSquares]Mask

	maskCorner Mask
	maskThrone Mask
)

// rayDeltas are the four cardinal unit steps as (row, col) deltas.
var rayDeltas = [4][2]int8{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func init() {
	initMask()
}

func initMask() {
	for i := 0; i < TotalSquares; i++ {
		maskCell[i] = SquareMask(square.Square(i))
	}

	for i := 0; i < TotalSquares; i++ {
		sq := square.Square(i)
		maskRow[sq.Row()] = maskRow[sq.Row()].Union(maskCell[i])
		maskCol[sq.Col()] = maskCol[sq.Col()].Union(maskCell[i])
	}

	for i := 0; i < TotalSquares; i++ {
		sq := square.Square(i)
		maskMoves[i] = maskRow[sq.Row()].Union(maskCol[sq.Col()]).Diff(maskCell[i])
	}

	for i := 0; i < TotalSquares; i++ {
		sq := square.Square(i)
		mask := Mask{}
		for _, d := range rayDeltas {
			ray := castRay(sq, d[0], d[1])
			if len(ray) == 0 {
				continue
			}
			// the edge terminal of a ray can never be jumped, so its
			// occupancy is irrelevant for indexing
			for _, rs := range ray[:len(ray)-1] {
				mask = mask.Union(maskCell[rs])
			}
		}
		maskBlockers[i] = mask
	}

	for i := 0; i < TotalSquares; i++ {
		sq := square.Square(i)
		// 5x5 window offsets: distance-one and distance-two orthogonals
		for _, k := range []int8{7, 11, 13, 17} {
			if adj, err := sq.Offset(k); err == nil {
				maskAdjacent[i] = maskAdjacent[i].Union(maskCell[adj])
			}
		}
		for _, k := range []int8{2, 10, 14, 22} {
			if inter, err := sq.Offset(k); err == nil {
				maskInterjacent[i] = maskInterjacent[i].Union(maskCell[inter])
			}
		}
	}

	for _, rc := range [][2]int8{{0, 0}, {0, BoardLength - 1}, {BoardLength - 1, 0}, {BoardLength - 1, BoardLength - 1}} {
		sq, _ := square.New(rc[0], rc[1])
		maskCorner = maskCorner.Union(maskCell[sq])
	}
	throne, _ := square.New(BoardLength/2, BoardLength/2)
	maskThrone = maskCell[throne]
}

// castRay lists the squares from sq (exclusive) to the board edge along the
// given (row, col) step, in walking order.
func castRay(sq square.Square, dRow, dCol int8) []square.Square {
	var ray []square.Square
	row, col := sq.Row()+dRow, sq.Col()+dCol
	for {
		next, err := square.New(row, col)
		if err != nil {
			return ray
		}
		ray = append(ray, next)
		row, col = row+dRow, col+dCol
	}
}

// AdjacentMask returns the orthogonal unit-distance neighborhood of a square.
func AdjacentMask(sq square.Square) Mask {
	return maskAdjacent[sq]
}

// InterjacentMask returns the orthogonal two-unit-distance neighborhood of a
// square, used to locate the flanking ally in a capture.
func InterjacentMask(sq square.Square) Mask {
	return maskInterjacent[sq]
}

// CornerMask returns the four corner squares, the King's escape targets.
func CornerMask() Mask {
	return maskCorner
}

// ThroneMask returns the center square.
func ThroneMask() Mask {
	return maskThrone
}
