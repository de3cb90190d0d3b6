package sampling

import (
	"gorosi/domain/risk"
)

// Uniforms generates n uniform samples in [0, 1) for every varying
// parameter of the problem, keyed by parameter name. Fixed parameters
// consume no sequence dimension. The underlying sampler emits the expanded
// Saltelli row block; only the first n rows are retained so downstream
// shapes are exact.
//
// Returns an empty map when nothing varies.
func Uniforms(problem risk.Problem, n int, seed int64) (map[string][]float64, error) {
	cols := make(map[string][]float64, problem.Dimensions())
	if problem.Empty() {
		return cols, nil
	}

	set, err := Saltelli(problem.Dimensions(), n, seed)
	if err != nil {
		return nil, err
	}
	rows := set.Rows()[:n]

	for d, p := range problem.Varying {
		col := make([]float64, n)
		for j := 0; j < n; j++ {
			col[j] = rows[j][d]
		}
		cols[p.Name] = col
	}
	return cols, nil
}
