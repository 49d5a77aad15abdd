// Package rng provides the reproducible pseudo-random generators used to pick
// which card leaves the deck on every draw.
//
// Two generators are available: the RANDU flavour of the Park-Miller linear
// congruential generator and the 32-bit Mersenne Twister (MT19937). Both are
// deterministic for a given seed. A round must create its generator once and
// reuse it for every draw; reconstructing a generator per draw replays the
// same first output forever.
//
//	src, err := rng.New(rng.Mersenne, rng.WithSeed(5489))
//	if err != nil {
//	    return err
//	}
//	card, err := d.RemoveRandom(src)
//
// None of these generators are suitable for cryptographic use.
package rng

import (
	"errors"
	"fmt"

	"github.com/coder/quartz"
)

var (
	// ErrInvalidGenerator is returned (or panicked with, for zero-value
	// generators) when a generator is used before it has a seed.
	ErrInvalidGenerator = errors.New("rng: generator has no seed")

	// ErrUnknownRandomMethod is returned by ParseMethod for unsupported names.
	ErrUnknownRandomMethod = errors.New("rng: unknown random method")
)

// Source is a stream of pseudo-random numbers.
type Source interface {
	// Next advances the generator and returns its raw output.
	Next() uint32
	// Draw returns Next() % bound. It panics if bound is zero.
	Draw(bound uint32) uint32
}

// Method selects a generator implementation.
type Method int

const (
	RandU Method = iota
	Mersenne
)

// Methods lists the method names accepted by ParseMethod.
var Methods = []string{RandU.String(), Mersenne.String()}

// String returns the command line name of the method
func (m Method) String() string {
	switch m {
	case RandU:
		return "randU"
	case Mersenne:
		return "Mersenne"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name to a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "randU":
		return RandU, nil
	case "Mersenne":
		return Mersenne, nil
	default:
		return 0, fmt.Errorf("%w: %q (choose from randU and Mersenne)", ErrUnknownRandomMethod, name)
	}
}

type options struct {
	seed   *uint64
	init   TwisterInit
	clock  quartz.Clock
	seeded bool
}

// Option configures New.
type Option func(*options)

// WithSeed seeds the generator with a fixed value.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
		o.clock = nil
		o.seeded = true
	}
}

// WithClockSeed seeds the generator from the clock's current Unix time in
// seconds. This is the only place wall-clock time enters a generator.
func WithClockSeed(clock quartz.Clock) Option {
	return func(o *options) {
		o.seed = nil
		o.clock = clock
		o.seeded = clock != nil
	}
}

// WithTwisterInit selects how a Mersenne Twister expands its seed. It has no
// effect on the LCG.
func WithTwisterInit(init TwisterInit) Option {
	return func(o *options) {
		o.init = init
	}
}

// New builds a seeded generator for method. A seed option is required.
func New(method Method, opts ...Option) (Source, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		return nil, ErrInvalidGenerator
	}

	seed, err := o.resolveSeed()
	if err != nil {
		return nil, err
	}

	switch method {
	case RandU:
		return NewLCG(seed), nil
	case Mersenne:
		return NewMersenneTwisterInit(uint32(seed), o.init), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownRandomMethod, method)
	}
}

// Seed returns the seed New would use for opts, so callers can log or record
// it for replay.
func Seed(opts ...Option) (uint64, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		return 0, ErrInvalidGenerator
	}
	return o.resolveSeed()
}

func (o *options) resolveSeed() (uint64, error) {
	if o.seed != nil {
		return *o.seed, nil
	}
	if o.clock == nil {
		return 0, ErrInvalidGenerator
	}
	return uint64(o.clock.Now().Unix()), nil
}

func checkBound(bound uint32) {
	if bound == 0 {
		panic("rng: Draw called with zero bound")
	}
}
