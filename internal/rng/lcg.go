package rng

const (
	randUMultiplier = 65539
	randUModulus    = 1 << 31
)

// LCG is a multiplicative linear congruential generator,
// seed' = (multiplier * seed) mod modulus. NewLCG uses the RANDU constants.
type LCG struct {
	seed       uint64
	multiplier uint64
	modulus    uint64
}

// NewLCG creates a RANDU generator (multiplier 65539, modulus 2^31).
func NewLCG(seed uint64) *LCG {
	return NewLCGWith(seed, randUMultiplier, randUModulus)
}

// NewLCGWith creates a generator with custom constants. The modulus must be
// non-zero and multiplier*(modulus-1) must fit in 64 bits.
func NewLCGWith(seed, multiplier, modulus uint64) *LCG {
	if modulus == 0 {
		panic("rng: LCG modulus must be non-zero")
	}
	// (c*x) mod m == (c*(x mod m)) mod m, so reducing keeps the product in range.
	return &LCG{
		seed:       seed % modulus,
		multiplier: multiplier,
		modulus:    modulus,
	}
}

// Next advances the generator and returns the new seed.
func (g *LCG) Next() uint32 {
	g.seed = (g.multiplier * g.seed) % g.modulus
	return uint32(g.seed)
}

// Draw returns Next() % bound.
func (g *LCG) Draw(bound uint32) uint32 {
	checkBound(bound)
	return g.Next() % bound
}

// State returns the current seed, which is also the last output.
func (g *LCG) State() uint64 {
	return g.seed
}
