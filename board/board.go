package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/valgard/hnefatafl/square"
)

var (
	ErrWrongTurn       = errors.New("wrong turn")
	ErrCornerForbidden = errors.New("only the king may move to a corner")
	ErrThroneForbidden = errors.New("no piece may move to the throne")
	ErrIllegalMove     = errors.New("illegal move")
)

// captureOffsets pairs a far and a near 5x5-window offset per cardinal
// direction, relative to the destination of the move just made: a flanking
// ally two squares out and the capture victim one square out.
var captureOffsets = [4][2]int8{{2, 7}, {10, 11}, {14, 13}, {22, 17}}

// Board orchestrates a game position: it validates and applies actions,
// maintains the hash incrementally, detects captures, and keeps an
// append-only history of states. A Board is exclusively owned by one caller;
// concurrent mutation must be serialized outside.
type Board struct {
	bitboard Bitboard
	zobrist  *ZobristTable
	magic    *MagicTable
	state    State
	history  []State
}

type boardConfig struct {
	layout  string
	magic   *MagicTable
	zobrist *ZobristTable
}

type BoardOption func(*boardConfig)

// WithLayout starts the board from a custom layout string.
func WithLayout(layout string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.layout = layout
	}
}

// WithMagicTable injects the O(1) move-generation fast path. Without it the
// board falls back to ray casting, with identical results.
func WithMagicTable(t *MagicTable) BoardOption {
	return func(cfg *boardConfig) {
		cfg.magic = t
	}
}

// WithZobristTable shares a hash-key table across boards. Boards hashed with
// different tables are not comparable.
func WithZobristTable(t *ZobristTable) BoardOption {
	return func(cfg *boardConfig) {
		cfg.zobrist = t
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		layout: DefaultStartingLayout,
	}
	for _, f := range opts {
		f(cfg)
	}

	segments := strings.Fields(cfg.layout)
	if len(segments) != 2 {
		return nil, fmt.Errorf("%w: expected board and turn segments", ErrInvalidLayout)
	}
	bitboard, err := parseLayout(segments[0])
	if err != nil {
		return nil, err
	}
	var turn Piece
	switch segments[1] {
	case "B":
		turn = PieceAttacker
	case "W":
		turn = PieceDefender
	default:
		return nil, fmt.Errorf("%w: unknown turn %q", ErrInvalidLayout, segments[1])
	}

	zobrist := cfg.zobrist
	if zobrist == nil {
		if zobrist, err = NewZobristTable(0); err != nil {
			return nil, err
		}
	}

	state := State{
		Hash: calculateHash(&bitboard, zobrist),
		Turn: turn,
	}
	return &Board{
		bitboard: bitboard,
		zobrist:  zobrist,
		magic:    cfg.magic,
		state:    state,
		history:  []State{state},
	}, nil
}

func calculateHash(bb *Bitboard, zobrist *ZobristTable) uint64 {
	var hash uint64
	for _, ps := range bb.Pieces() {
		hash ^= zobrist.Key(ps.Piece, ps.Square)
	}
	return hash
}

// Pieces lists the current occupancy as (piece, square) pairs.
func (b *Board) Pieces() []PieceSquare {
	return b.bitboard.Pieces()
}

// PieceAt returns the piece on a square, if any.
func (b *Board) PieceAt(sq square.Square) (Piece, bool) {
	for p := PieceKing; p < PieceCount; p++ {
		if b.bitboard[p].Overlaps(maskCell[sq]) {
			return p, true
		}
	}
	return PieceCount, false
}

func (b *Board) Turn() Piece {
	return b.state.Turn
}

func (b *Board) Hash() uint64 {
	return b.state.Hash
}

// LastAction returns the action that produced the current state, nil before
// the first move.
func (b *Board) LastAction() *Action {
	return b.state.Action
}

// History returns the append-only state log, oldest first.
func (b *Board) History() []State {
	history := make([]State, len(b.history))
	copy(history, b.history)
	return history
}

// turnMask is the set of squares holding pieces of the side to move. The King
// moves on the Defender's turn.
func (b *Board) turnMask() Mask {
	if b.state.Turn == PieceAttacker {
		return b.bitboard[PieceAttacker]
	}
	return b.bitboard[PieceDefender].Union(b.bitboard[PieceKing])
}

// Destinations returns the reachable squares from sq under the current
// occupancy, via the magic table when injected and ray casting otherwise.
func (b *Board) Destinations(sq square.Square) Mask {
	occupancy := b.bitboard.All()
	if b.magic != nil {
		return b.magic.Lookup(sq, occupancy)
	}
	return LegalMoves(sq, maskMoves[sq].Intersect(occupancy))
}

// MovePiece validates and applies an action. Validation is all-or-nothing: a
// rule violation leaves the board untouched. Submitting an action whose piece
// is not on its source square is a contract violation and panics.
func (b *Board) MovePiece(action Action) error {
	if !action.Valid(&b.bitboard) {
		panic(fmt.Sprintf("board: no %s on %s", action.Piece, action.From))
	}

	if !action.TurnValid(b.turnMask()) {
		return fmt.Errorf("%w: %s is not to move", ErrWrongTurn, action.Piece)
	}
	if action.Piece != PieceKing && maskCorner.Overlaps(maskCell[action.To]) {
		return fmt.Errorf("%w: %s", ErrCornerForbidden, action.To)
	}
	if maskThrone.Overlaps(maskCell[action.To]) {
		return fmt.Errorf("%w: %s", ErrThroneForbidden, action.To)
	}
	if !b.Destinations(action.From).Overlaps(maskCell[action.To]) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, action)
	}

	b.RemovePiece(action.Piece, action.From)
	b.AddPiece(action.Piece, action.To)
	b.state.Action = &action
	b.state.Turn = b.state.Turn.Opposite()
	b.history = append(b.history, b.state)
	return nil
}

// RemovePiece clears a piece's bit and updates the hash. Callers use it to
// apply the captures reported by CapturedPieces.
func (b *Board) RemovePiece(p Piece, sq square.Square) {
	b.bitboard[p] = b.bitboard[p].Diff(maskCell[sq])
	b.state.Hash ^= b.zobrist.Key(p, sq)
}

// AddPiece sets a piece's bit and updates the hash.
func (b *Board) AddPiece(p Piece, sq square.Square) {
	b.bitboard[p] = b.bitboard[p].Union(maskCell[sq])
	b.state.Hash ^= b.zobrist.Key(p, sq)
}

// CapturedPieces reports the pieces captured by the move just made: for each
// cardinal direction from the destination, an enemy on the adjacent square
// flanked by an ally on the interjacent square is captured. Directions
// leaving the board are skipped. Pure and restartable over the post-move
// position. Calling it before any move is a contract violation and panics.
func (b *Board) CapturedPieces() []PieceSquare {
	action := b.state.Action
	if action == nil {
		panic("board: move a piece first")
	}

	var allyMask, enemyMask Mask
	switch action.Piece.Opposite() {
	case PieceDefender:
		allyMask = b.bitboard[PieceAttacker]
		enemyMask = b.bitboard[PieceDefender].Union(b.bitboard[PieceKing])
	case PieceAttacker:
		allyMask = b.bitboard[PieceDefender].Union(b.bitboard[PieceKing])
		enemyMask = b.bitboard[PieceAttacker]
	}

	var captured []PieceSquare
	for _, offsets := range captureOffsets {
		ally, err := action.To.Offset(offsets[0])
		if err != nil {
			continue
		}
		enemy, err := action.To.Offset(offsets[1])
		if err != nil {
			continue
		}
		if !allyMask.Overlaps(maskCell[ally]) || !enemyMask.Overlaps(maskCell[enemy]) {
			continue
		}
		p, ok := b.PieceAt(enemy)
		if !ok {
			continue
		}
		captured = append(captured, PieceSquare{Piece: p, Square: enemy})
	}
	return captured
}

func (b *Board) Dump() string {
	return b.bitboard.Dump()
}

// Draw renders the board for terminals, restricted squares tinted and each
// side in its own color.
func (b *Board) Draw() string {
	var (
		attacker   = color.New(color.FgRed, color.Bold)
		defender   = color.New(color.FgCyan, color.Bold)
		king       = color.New(color.FgYellow, color.Bold)
		restricted = color.New(color.BgHiBlack)
		label      = color.New(color.Faint)
	)

	builder := strings.Builder{}
	for row := int8(0); row < BoardLength; row++ {
		_, _ = builder.WriteString(label.Sprintf(" %d ", row+1))
		for col := int8(0); col < BoardLength; col++ {
			sq, _ := square.New(row, col)
			cell := " . "
			if p, ok := b.PieceAt(sq); ok {
				sym := fmt.Sprintf(" %c ", p.Symbol())
				switch p {
				case PieceAttacker:
					cell = attacker.Sprint(sym)
				case PieceDefender:
					cell = defender.Sprint(sym)
				case PieceKing:
					cell = king.Sprint(sym)
				}
			} else if maskCorner.Union(maskThrone).Overlaps(maskCell[sq]) {
				cell = restricted.Sprint(" + ")
			}
			_, _ = builder.WriteString(cell)
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for col := int8(0); col < BoardLength; col++ {
		_, _ = builder.WriteString(label.Sprintf(" %s ", string(rune('a'+col))))
	}
	return builder.String()
}
