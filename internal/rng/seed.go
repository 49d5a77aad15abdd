package rng

const goldenRatio64 = 0x9e3779b97f4a7c15

// DeriveSeed returns an independent seed for round n of a run started from
// base. Neighbouring rounds get well separated seeds, and the result depends
// only on (base, n), never on which worker plays the round.
func DeriveSeed(base uint64, n int) uint64 {
	return mix(base + uint64(n)*goldenRatio64)
}

// Recorder wraps a Source and keeps every raw output so a round can be
// replayed later with NewScripted.
type Recorder struct {
	src     Source
	outputs []uint32
}

// NewRecorder wraps src.
func NewRecorder(src Source) *Recorder {
	return &Recorder{src: src}
}

// Next forwards to the wrapped source and records the output.
func (r *Recorder) Next() uint32 {
	v := r.src.Next()
	r.outputs = append(r.outputs, v)
	return v
}

// Draw returns Next() % bound.
func (r *Recorder) Draw(bound uint32) uint32 {
	checkBound(bound)
	return r.Next() % bound
}

// Outputs returns a copy of the recorded raw outputs.
func (r *Recorder) Outputs() []uint32 {
	out := make([]uint32, len(r.outputs))
	copy(out, r.outputs)
	return out
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
