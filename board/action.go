package board

import (
	"fmt"

	"github.com/valgard/hnefatafl/square"
)

// Action is a candidate move: a piece sliding from one square to another.
type Action struct {
	Piece    Piece
	From, To square.Square
}

func NewAction(p Piece, from, to square.Square) Action {
	return Action{Piece: p, From: from, To: to}
}

// Valid reports whether the piece actually stands on the source square. A
// caller submitting an action that fails this check holds a stale view of the
// board.
func (a Action) Valid(bb *Bitboard) bool {
	return bb[a.Piece].Overlaps(maskCell[a.From])
}

// TurnValid reports whether the source square belongs to the side to move.
func (a Action) TurnValid(turnMask Mask) bool {
	return turnMask.Overlaps(maskCell[a.From])
}

func (a Action) String() string {
	return fmt.Sprintf("%c%s-%s", a.Piece.Symbol(), a.From, a.To)
}
