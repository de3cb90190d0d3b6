package engine

import (
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gorosi/domain/risk"
	"gorosi/internal/sampling"
)

// Model is the scalar function whose output variance is decomposed. It
// receives every parameter of the reduced problem plus the constant fill
// for the pruned ones.
type Model func(params map[string]float64) float64

// bootstrapResamples and confidenceLevel mirror the reference analyzer's
// defaults.
const (
	bootstrapResamples = 100
	confidenceLevel    = 0.95
)

// Sensitivity decomposes the model's output variance into first-order and
// total-order Sobol indices over the varying parameters, each with a
// bootstrap confidence interval. Returns an empty result when the problem
// has no varying parameter: sensitivity is undefined when every input is a
// point value.
//
// The analyzer draws its own Saltelli batch with the scenario seed and the
// reduced dimensionality; this sub-pipeline is independent of the main
// sampling pass.
func Sensitivity(problem risk.Problem, n int, seed int64, model Model) (risk.SensitivityResult, error) {
	result := make(risk.SensitivityResult)
	if problem.Empty() {
		return result, nil
	}

	d := problem.Dimensions()
	set, err := sampling.Saltelli(d, n, seed)
	if err != nil {
		return nil, err
	}

	evaluate := func(rows [][]float64) []float64 {
		out := make([]float64, len(rows))
		params := make(map[string]float64, d+len(problem.Constants))
		for name, v := range problem.Constants {
			params[name] = v
		}
		for j, row := range rows {
			for i, p := range problem.Varying {
				params[p.Name] = p.Range.Min + row[i]*p.Range.Width()
			}
			out[j] = model(params)
		}
		return out
	}

	yA := evaluate(set.A)
	yB := evaluate(set.B)
	yAB := make([][]float64, d)
	for i := 0; i < d; i++ {
		yAB[i] = evaluate(set.AB[i])
	}

	rng := rand.New(rand.NewSource(seed))
	z := distuv.UnitNormal.Quantile(0.5 + confidenceLevel/2)

	for i, p := range problem.Varying {
		s1 := firstOrder(yA, yB, yAB[i], nil)
		st := totalOrder(yA, yB, yAB[i], nil)

		s1Boot := make([]float64, bootstrapResamples)
		stBoot := make([]float64, bootstrapResamples)
		for b := 0; b < bootstrapResamples; b++ {
			idx := resampleIndices(n, rng)
			s1Boot[b] = firstOrder(yA, yB, yAB[i], idx)
			stBoot[b] = totalOrder(yA, yB, yAB[i], idx)
		}
		s1Std, _ := stats.StandardDeviationSample(s1Boot)
		stStd, _ := stats.StandardDeviationSample(stBoot)

		result[p.Name] = risk.SensitivityIndex{
			S1:     s1,
			S1Conf: z * s1Std,
			ST:     st,
			STConf: z * stStd,
		}
	}
	return result, nil
}

// firstOrder is the Saltelli 2010 estimator:
// S1 = mean(yB * (yAB - yA)) / Var(yA u yB).
func firstOrder(yA, yB, yAB []float64, idx []int) float64 {
	n := len(yA)
	sum := 0.0
	for j := 0; j < n; j++ {
		k := j
		if idx != nil {
			k = idx[j]
		}
		sum += yB[k] * (yAB[k] - yA[k])
	}
	v := combinedVariance(yA, yB, idx)
	if v == 0 {
		return 0
	}
	return sum / float64(n) / v
}

// totalOrder is the Jansen estimator:
// ST = mean((yA - yAB)^2) / (2 * Var(yA u yB)).
func totalOrder(yA, yB, yAB []float64, idx []int) float64 {
	n := len(yA)
	sum := 0.0
	for j := 0; j < n; j++ {
		k := j
		if idx != nil {
			k = idx[j]
		}
		diff := yA[k] - yAB[k]
		sum += diff * diff
	}
	v := combinedVariance(yA, yB, idx)
	if v == 0 {
		return 0
	}
	return sum / (2 * float64(n)) / v
}

func combinedVariance(yA, yB []float64, idx []int) float64 {
	n := len(yA)
	mean := 0.0
	for j := 0; j < n; j++ {
		k := j
		if idx != nil {
			k = idx[j]
		}
		mean += yA[k] + yB[k]
	}
	mean /= float64(2 * n)

	variance := 0.0
	for j := 0; j < n; j++ {
		k := j
		if idx != nil {
			k = idx[j]
		}
		da := yA[k] - mean
		db := yB[k] - mean
		variance += da*da + db*db
	}
	variance /= float64(2 * n)
	if math.IsNaN(variance) {
		return 0
	}
	return variance
}

func resampleIndices(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for j := range idx {
		idx[j] = rng.Intn(n)
	}
	return idx
}
