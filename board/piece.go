package board

type Piece uint8

const (
	PieceKing Piece = iota
	PieceDefender
	PieceAttacker
	PieceCount
)

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PieceKing:
		return "King"
	case PieceDefender:
		return "Defender"
	case PieceAttacker:
		return "Attacker"
	default:
		return ""
	}
}

// Opposite returns the enemy side of a piece. The King and Defenders are
// allied; the Attackers are the other side.
func (p Piece) Opposite() Piece {
	switch p {
	case PieceKing, PieceDefender:
		return PieceAttacker
	case PieceAttacker:
		return PieceDefender
	default:
		return PieceCount
	}
}

func (p Piece) Symbol() rune {
	switch p {
	case PieceKing:
		return 'K'
	case PieceDefender:
		return 'D'
	case PieceAttacker:
		return 'A'
	default:
		return '?'
	}
}

func PieceFromSymbol(sym rune) (Piece, bool) {
	switch sym {
	case 'K':
		return PieceKing, true
	case 'D':
		return PieceDefender, true
	case 'A':
		return PieceAttacker, true
	default:
		return PieceCount, false
	}
}
