package sampling

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"

	"gorosi/domain/core"
)

// sobolBits is the precision of the generated points.
const sobolBits = 32

// Sequence is a Sobol low-discrepancy sequence over a fixed number of
// dimensions. Points are produced in Gray-code order; the zero-indexed
// first point is the origin. A Sequence is not safe for concurrent use;
// the engine materializes all samples up front and shares them read-only.
type Sequence struct {
	dims int
	v    [][]uint32 // direction numbers, v[d][k]
	x    []uint32   // current integer point per dimension
	n    uint32     // points emitted so far
}

// NewSequence builds a Sobol sequence of the given dimensionality.
func NewSequence(dims int) (*Sequence, error) {
	if dims < 1 {
		return nil, fmt.Errorf("sobol: dimensions must be positive, got %d", dims)
	}
	if dims > MaxDimensions {
		return nil, fmt.Errorf("%w: %d > %d", core.ErrDimensionLimit, dims, MaxDimensions)
	}

	s := &Sequence{
		dims: dims,
		v:    make([][]uint32, dims),
		x:    make([]uint32, dims),
	}

	// First dimension: van der Corput radical inverse in base 2.
	s.v[0] = make([]uint32, sobolBits)
	for k := 0; k < sobolBits; k++ {
		s.v[0][k] = 1 << (sobolBits - 1 - k)
	}

	for d := 1; d < dims; d++ {
		s.v[d] = directionNumbers(directionTable[d-1])
	}
	return s, nil
}

// directionNumbers expands a polynomial's initial values into the full set
// of direction numbers via the standard recurrence.
func directionNumbers(p polynomial) []uint32 {
	deg := len(p.m)
	v := make([]uint32, sobolBits)
	for k := 0; k < deg && k < sobolBits; k++ {
		v[k] = p.m[k] << (sobolBits - 1 - k)
	}
	for k := deg; k < sobolBits; k++ {
		v[k] = v[k-deg] ^ (v[k-deg] >> uint(deg))
		for j := 1; j < deg; j++ {
			if (p.a>>(uint(deg-1-j)))&1 == 1 {
				v[k] ^= v[k-j]
			}
		}
	}
	return v
}

// Dimensions returns the dimensionality of the sequence.
func (s *Sequence) Dimensions() int {
	return s.dims
}

// Next writes the integer coordinates of the next point into dst, which
// must have length Dimensions.
func (s *Sequence) Next(dst []uint32) {
	if s.n > 0 {
		// Index of the lowest zero bit of the previous counter value.
		c := bits.TrailingZeros32(^(s.n - 1))
		for d := 0; d < s.dims; d++ {
			s.x[d] ^= s.v[d][c]
		}
	}
	copy(dst, s.x)
	s.n++
}

// DigitalShift is the RQMC randomization: a per-dimension XOR mask applied
// to the binary expansion of every point. It removes the sampler's bias
// while preserving the low-discrepancy structure.
type DigitalShift struct {
	masks []uint32
}

// NewDigitalShift draws one mask per dimension from rng.
func NewDigitalShift(dims int, rng *rand.Rand) *DigitalShift {
	masks := make([]uint32, dims)
	for d := range masks {
		masks[d] = rng.Uint32()
	}
	return &DigitalShift{masks: masks}
}

// Apply scrambles one integer point in place.
func (ds *DigitalShift) Apply(point []uint32) {
	for d := range point {
		point[d] ^= ds.masks[d]
	}
}

// toUnit maps an integer coordinate into [0, 1).
func toUnit(x uint32) float64 {
	return float64(x) / math.Exp2(sobolBits)
}

// Points materializes n scrambled points in [0, 1)^dims. The same seed and
// dimensionality produce a bit-for-bit identical matrix.
func Points(dims, n int, seed int64) ([][]float64, error) {
	seq, err := NewSequence(dims)
	if err != nil {
		return nil, err
	}
	shift := NewDigitalShift(dims, rand.New(rand.NewSource(seed)))

	raw := make([]uint32, dims)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		seq.Next(raw)
		shift.Apply(raw)
		row := make([]float64, dims)
		for d := 0; d < dims; d++ {
			row[d] = toUnit(raw[d])
		}
		out[i] = row
	}
	return out, nil
}
