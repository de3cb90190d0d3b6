package sampling

// SaltelliSet holds the cross-sampling scheme used for variance
// decomposition: two independent point sets A and B over the same
// dimensions plus, per dimension i, the hybrid set AB_i equal to A with
// column i taken from B. With second-order interactions disabled this is
// n*(d+2) model evaluations.
type SaltelliSet struct {
	A  [][]float64   // n x d
	B  [][]float64   // n x d
	AB [][][]float64 // AB[i] is n x d
}

// Saltelli draws a scrambled 2d-dimensional Sobol point set and splits it
// into the A/B/AB_i scheme. Deterministic for a fixed seed, d and n.
func Saltelli(d, n int, seed int64) (*SaltelliSet, error) {
	base, err := Points(2*d, n, seed)
	if err != nil {
		return nil, err
	}

	set := &SaltelliSet{
		A:  make([][]float64, n),
		B:  make([][]float64, n),
		AB: make([][][]float64, d),
	}
	for i := 0; i < d; i++ {
		set.AB[i] = make([][]float64, n)
	}

	for j := 0; j < n; j++ {
		a := make([]float64, d)
		b := make([]float64, d)
		copy(a, base[j][:d])
		copy(b, base[j][d:])
		set.A[j] = a
		set.B[j] = b
		for i := 0; i < d; i++ {
			hybrid := make([]float64, d)
			copy(hybrid, a)
			hybrid[i] = b[i]
			set.AB[i][j] = hybrid
		}
	}
	return set, nil
}

// Rows flattens the scheme into the block row layout emitted by common
// Sobol samplers: for each base sample j the A row, the d AB_i rows, then
// the B row. Callers that only need n plain samples keep the first n rows.
func (s *SaltelliSet) Rows() [][]float64 {
	if len(s.A) == 0 {
		return nil
	}
	d := len(s.A[0])
	rows := make([][]float64, 0, len(s.A)*(d+2))
	for j := range s.A {
		rows = append(rows, s.A[j])
		for i := 0; i < d; i++ {
			rows = append(rows, s.AB[i][j])
		}
		rows = append(rows, s.B[j])
	}
	return rows
}
