package square

import (
	"errors"
)

const (
	// BoardLength is the side length of the board.
	BoardLength Square = 9

	// TotalSquares is the number of squares on the board.
	TotalSquares Square = BoardLength * BoardLength

	// offsetWindow is the side length of the relative neighborhood window
	// used by Offset.
	offsetWindow Square = 5
)

var (
	// ErrInvalidSquare represents an out-of-board square error.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Square is a linear board index in [0, TotalSquares), row-major.
type Square int8

func New(row, col int8) (Square, error) {
	if row < 0 || col < 0 || Square(row) >= BoardLength || Square(col) >= BoardLength {
		return 0, ErrInvalidSquare
	}
	return Square(row)*BoardLength + Square(col), nil
}

func FromIndex(index int) (Square, error) {
	if index < 0 || index >= int(TotalSquares) {
		return 0, ErrInvalidSquare
	}
	return Square(index), nil
}

func FromNotation(n string) (Square, error) {
	if len(n) != 2 {
		return 0, ErrInvalidNotation
	}
	col := Square(n[0] - 'a')
	row := Square(n[1] - '1')
	if col < 0 || BoardLength <= col || row < 0 || BoardLength <= row {
		return 0, ErrInvalidNotation
	}
	return row*BoardLength + col, nil
}

func (s Square) Row() int8 {
	return int8(s / BoardLength)
}

func (s Square) Col() int8 {
	return int8(s % BoardLength)
}

func (s Square) Index() int {
	return int(s)
}

// Offset returns the square at a signed (row, col) delta from s. The delta is
// encoded as a single index over a 5x5 window centered on s: delta row is
// k/5-2 and delta col is k%5-2 for k in [0,25).
func (s Square) Offset(k int8) (Square, error) {
	if k < 0 || Square(k) >= offsetWindow*offsetWindow {
		return 0, ErrInvalidSquare
	}
	row := int8(Square(k)/offsetWindow-2) + s.Row()
	col := int8(Square(k)%offsetWindow-2) + s.Col()
	return New(row, col)
}

func (s Square) String() string {
	return s.Notation()
}

func (s Square) Notation() string {
	if s < 0 || s >= TotalSquares {
		return ""
	}
	return string(rune('a'+s.Col())) + string(rune('1'+s.Row()))
}
