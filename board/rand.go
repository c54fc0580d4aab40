package board

// PseudoRand is an xorshift64* generator used for Zobrist keys and magic
// candidates, keeping randomness explicit instead of process-global.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand(seed uint64) *PseudoRand {
	if seed == 0 {
		seed = 0x6a09e667f3bcc909
	}
	return &PseudoRand{s: seed}
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// SparseUint64 biases towards few set bits, the preferred shape for magic
// multiplier candidates.
func (r *PseudoRand) SparseUint64() uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}

// SparseMask draws a sparse 128-bit magic multiplier candidate.
func (r *PseudoRand) SparseMask() Mask {
	return Mask{Lo: r.SparseUint64(), Hi: r.SparseUint64()}
}
