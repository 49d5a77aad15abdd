package rng

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908B0DF
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
	mtInitMult  = 1812433253
)

// TwisterInit selects how the Mersenne Twister state is expanded from a seed.
type TwisterInit int

const (
	// CanonicalInit is the reference MT19937 initialisation,
	// state[i] = 1812433253 * (state[i-1] ^ state[i-1]>>30) + i.
	CanonicalInit TwisterInit = iota
	// LegacyInit reproduces the expansion used by the first version of the
	// game, state[i] = (1812433253 * state[i-1]) ^ (state[i-1]>>30 + i).
	// Its output does not match the MT19937 reference sequence.
	LegacyInit
)

// String returns the config name of the scheme
func (t TwisterInit) String() string {
	switch t {
	case CanonicalInit:
		return "canonical"
	case LegacyInit:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseTwisterInit maps a config name to a TwisterInit.
func ParseTwisterInit(name string) (TwisterInit, bool) {
	switch name {
	case "canonical", "":
		return CanonicalInit, true
	case "legacy":
		return LegacyInit, true
	default:
		return 0, false
	}
}

// MersenneTwister is the 32-bit MT19937 generator. The zero value has no seed
// and panics with ErrInvalidGenerator when used.
type MersenneTwister struct {
	state  [mtN]uint32
	index  int
	seeded bool
}

// NewMersenneTwister creates a generator using the reference initialisation.
func NewMersenneTwister(seed uint32) *MersenneTwister {
	return NewMersenneTwisterInit(seed, CanonicalInit)
}

// NewMersenneTwisterInit creates a generator using the given initialisation
// scheme.
func NewMersenneTwisterInit(seed uint32, init TwisterInit) *MersenneTwister {
	mt := &MersenneTwister{}
	mt.Seed(seed, init)
	return mt
}

// Seed resets the state from seed. The first Next after seeding regenerates
// the whole state array.
func (mt *MersenneTwister) Seed(seed uint32, init TwisterInit) {
	mt.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := mt.state[i-1]
		if init == LegacyInit {
			mt.state[i] = (mtInitMult * prev) ^ ((prev >> 30) + uint32(i))
		} else {
			mt.state[i] = mtInitMult*(prev^(prev>>30)) + uint32(i)
		}
	}
	mt.index = 0
	mt.seeded = true
}

// twist regenerates all 624 state words.
func (mt *MersenneTwister) twist() {
	for i := 0; i < mtN; i++ {
		y := (mt.state[i] & mtUpperMask) | (mt.state[(i+1)%mtN] & mtLowerMask)
		mt.state[i] = mt.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			mt.state[i] ^= mtMatrixA
		}
	}
}

// Next returns the tempered state word at the cursor, twisting first whenever
// the cursor is back at zero.
func (mt *MersenneTwister) Next() uint32 {
	if !mt.seeded {
		panic(ErrInvalidGenerator)
	}
	if mt.index == 0 {
		mt.twist()
	}

	y := mt.state[mt.index]
	y ^= y >> 11
	y ^= (y << 7) & 0x9D2C5680
	y ^= (y << 15) & 0xEFC60000
	y ^= y >> 18

	mt.index = (mt.index + 1) % mtN
	return y
}

// Draw returns Next() % bound.
func (mt *MersenneTwister) Draw(bound uint32) uint32 {
	checkBound(bound)
	return mt.Next() % bound
}
