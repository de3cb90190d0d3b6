package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ModeEstimator locates the most likely value of a sample and reports the
// share of samples near it. Isolated behind an interface so the density
// estimation technique can change without touching the aggregator.
type ModeEstimator interface {
	// Mode returns the estimated mode and the percentage of samples
	// within 1% of it.
	Mode(values []float64) (mode float64, percentage float64)
}

// kdeGridPoints is the evaluation grid resolution for the density peak.
const kdeGridPoints = 100

// GaussianKDE estimates the mode as the peak of a Gaussian kernel density
// estimate with Scott's bandwidth.
type GaussianKDE struct{}

// NewModeEstimator returns the default density-based estimator.
func NewModeEstimator() ModeEstimator {
	return GaussianKDE{}
}

func (GaussianKDE) Mode(values []float64) (float64, float64) {
	n := len(values)
	switch n {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return values[0], 100
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return lo, 100
	}

	sigma := math.Sqrt(stat.Variance(values, nil))
	bandwidth := sigma * math.Pow(float64(n), -1.0/5.0)
	if bandwidth <= 0 {
		return lo, 100
	}
	kernel := distuv.Normal{Mu: 0, Sigma: 1}

	step := (hi - lo) / float64(kdeGridPoints-1)
	mode, best := lo, math.Inf(-1)
	for g := 0; g < kdeGridPoints; g++ {
		x := lo + float64(g)*step
		density := 0.0
		for _, v := range values {
			density += kernel.Prob((x - v) / bandwidth)
		}
		if density > best {
			best = density
			mode = x
		}
	}

	window := 0.01 * math.Abs(mode)
	count := 0
	for _, v := range values {
		if math.Abs(v-mode) <= window {
			count++
		}
	}
	return mode, float64(count) / float64(n) * 100
}
