package board

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/valgard/hnefatafl/square"
)

// Mask is a 128-bit value holding a set of board squares in its low 81 bits.
// Set-producing operations keep bits >= 81 zero; the raw 128-bit width is
// also used for magic multipliers. Mask is comparable and usable as a map key.
type Mask struct {
	Lo, Hi uint64
}

// maskUsedHi covers bits 64..80, the high word's share of the 81-bit domain.
const maskUsedHi = uint64(1)<<(TotalSquares-64) - 1

func (m Mask) Union(o Mask) Mask {
	return Mask{Lo: m.Lo | o.Lo, Hi: m.Hi | o.Hi}
}

func (m Mask) Intersect(o Mask) Mask {
	return Mask{Lo: m.Lo & o.Lo, Hi: m.Hi & o.Hi}
}

func (m Mask) Diff(o Mask) Mask {
	return Mask{Lo: m.Lo &^ o.Lo, Hi: m.Hi &^ o.Hi}
}

func (m Mask) Not() Mask {
	return Mask{Lo: ^m.Lo, Hi: ^m.Hi & maskUsedHi}
}

func (m Mask) IsEmpty() bool {
	return m.Lo == 0 && m.Hi == 0
}

func (m Mask) Overlaps(o Mask) bool {
	return !m.Intersect(o).IsEmpty()
}

func (m Mask) Count() int {
	return bits.OnesCount64(m.Lo) + bits.OnesCount64(m.Hi)
}

// Squares lists the set squares in ascending index order.
func (m Mask) Squares() []square.Square {
	sqs := make([]square.Square, 0, m.Count())
	for lo := m.Lo; lo != 0; lo &= lo - 1 {
		sqs = append(sqs, square.Square(bits.TrailingZeros64(lo)))
	}
	for hi := m.Hi; hi != 0; hi &= hi - 1 {
		sqs = append(sqs, square.Square(64+bits.TrailingZeros64(hi)))
	}
	return sqs
}

// SquareMask returns the singleton Mask for a square.
func SquareMask(s square.Square) Mask {
	if s < 64 {
		return Mask{Lo: 1 << s}
	}
	return Mask{Hi: 1 << (s - 64)}
}

// mulIndex computes the magic perfect-hash index: the top shift bits of the
// low 128 bits of m*magic.
func (m Mask) mulIndex(magic Mask, shift uint8) uint64 {
	hi, _ := bits.Mul64(m.Lo, magic.Lo)
	hi += m.Lo*magic.Hi + m.Hi*magic.Lo
	return hi >> (64 - uint(shift))
}

// MarshalText renders the value as 32 hex digits, high word first, so Masks
// can key JSON maps in the magic asset.
func (m Mask) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%016x%016x", m.Hi, m.Lo)), nil
}

func (m *Mask) UnmarshalText(text []byte) error {
	if len(text) != 32 {
		return fmt.Errorf("mask text must be 32 hex digits, got %d", len(text))
	}
	hi, err := strconv.ParseUint(string(text[:16]), 16, 64)
	if err != nil {
		return fmt.Errorf("invalid mask text: %w", err)
	}
	lo, err := strconv.ParseUint(string(text[16:]), 16, 64)
	if err != nil {
		return fmt.Errorf("invalid mask text: %w", err)
	}
	m.Hi, m.Lo = hi, lo
	return nil
}

func (m Mask) String() string {
	return fmt.Sprintf("%016x%016x", m.Hi, m.Lo)
}

func (m Mask) Dump() string {
	builder := strings.Builder{}
	for row := int8(0); row < BoardLength; row++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", row+1))
		for col := int8(0); col < BoardLength; col++ {
			sq, _ := square.New(row, col)
			if m.Overlaps(maskCell[sq]) {
				_, _ = builder.WriteString(" # ")
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ---------------------------\n    ")
	for col := int8(0); col < BoardLength; col++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", string(rune('a'+col))))
	}
	return builder.String()
}
