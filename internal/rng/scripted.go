package rng

import (
	"errors"
	"fmt"
)

// ErrScriptExhausted is panicked by a Scripted source asked for more values
// than it holds.
var ErrScriptExhausted = errors.New("rng: scripted source exhausted")

// Scripted replays a fixed list of outputs. It is used to force exact deals
// in tests and to replay recorded rounds.
type Scripted struct {
	values []uint32
	next   int
}

// NewScripted returns a source that yields values in order.
func NewScripted(values ...uint32) *Scripted {
	v := make([]uint32, len(values))
	copy(v, values)
	return &Scripted{values: v}
}

// Next returns the next scripted value.
func (s *Scripted) Next() uint32 {
	if s.next >= len(s.values) {
		panic(fmt.Errorf("%w after %d values", ErrScriptExhausted, len(s.values)))
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Draw returns Next() % bound.
func (s *Scripted) Draw(bound uint32) uint32 {
	checkBound(bound)
	return s.Next() % bound
}

// Remaining returns how many scripted values have not been consumed.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.next
}
