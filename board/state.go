package board

// State is an immutable snapshot of a position: its Zobrist hash, the side to
// move (Attacker or Defender), and the action that produced it, nil for the
// initial position. States are copied, never referenced, into history.
type State struct {
	Hash   uint64
	Turn   Piece
	Action *Action
}
