package sampling

// polynomial is a primitive polynomial over GF(2) together with the initial
// direction numbers for one Sobol dimension. The coefficient word a encodes
// the interior coefficients c_{s-1}..c_1 (leading and trailing coefficients
// are implicit), s = len(m). The leading entries carry the published
// new-joe-kuo-6 initial direction numbers; dimensions beyond that table use
// unit initial values, which still yield a valid digital sequence. The
// digital shift applied afterwards restores unbiasedness.
type polynomial struct {
	a uint32
	m []uint32
}

// Dimension 1 is the van der Corput sequence and uses no polynomial; the
// table below covers dimensions 2..MaxDimensions.
var directionTable = []polynomial{
	{a: 0, m: []uint32{1}},
	{a: 1, m: []uint32{1, 3}},
	{a: 1, m: []uint32{1, 3, 1}},
	{a: 2, m: []uint32{1, 1, 1}},
	{a: 1, m: []uint32{1, 1, 3, 3}},
	{a: 4, m: []uint32{1, 3, 5, 13}},
	{a: 2, m: []uint32{1, 1, 5, 5, 17}},
	{a: 4, m: []uint32{1, 1, 5, 5, 5}},
	{a: 7, m: []uint32{1, 1, 7, 11, 19}},

	// Degree-5 polynomials (remaining), unit initial values.
	{a: 11, m: []uint32{1, 1, 1, 1, 1}},
	{a: 13, m: []uint32{1, 1, 1, 1, 1}},
	{a: 14, m: []uint32{1, 1, 1, 1, 1}},

	// Degree-6 polynomials.
	{a: 1, m: []uint32{1, 1, 1, 1, 1, 1}},
	{a: 13, m: []uint32{1, 1, 1, 1, 1, 1}},
	{a: 16, m: []uint32{1, 1, 1, 1, 1, 1}},
	{a: 19, m: []uint32{1, 1, 1, 1, 1, 1}},
	{a: 22, m: []uint32{1, 1, 1, 1, 1, 1}},
	{a: 25, m: []uint32{1, 1, 1, 1, 1, 1}},

	// Degree-7 polynomials.
	{a: 1, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 4, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 7, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 8, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 14, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 19, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 21, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 28, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 31, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 32, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 37, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 41, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 42, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 50, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 55, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 56, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 59, m: []uint32{1, 1, 1, 1, 1, 1, 1}},
	{a: 62, m: []uint32{1, 1, 1, 1, 1, 1, 1}},

	// Degree-8 polynomials.
	{a: 14, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 21, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 22, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 38, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 47, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 49, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 50, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 52, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 56, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 67, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 70, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 84, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 97, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 103, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 115, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
	{a: 122, m: []uint32{1, 1, 1, 1, 1, 1, 1, 1}},
}

// MaxDimensions is the highest Sobol dimensionality the embedded table
// supports.
var MaxDimensions = 1 + len(directionTable)
