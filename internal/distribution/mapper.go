package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gorosi/domain/risk"
)

// AROResolution is the sub-integer resolution of the occurrence-rate
// quantile: Poisson counts are taken at 100x scale and divided back, so the
// naturally integer quantile yields rates at 0.01 granularity.
const AROResolution = 100

// BetaShape solves the symmetric Beta shape parameter from the kurtosis
// knob. The excess kurtosis of Beta(a, a) is -6/(2a+3); the knob is
// anchored so the reference constant 1.7 yields the arcsine shape
// a = b = 0.5. Callers validate the kurtosis domain beforehand.
func BetaShape(kurtosis float64) float64 {
	excess := kurtosis - 3.2
	return (-6/excess - 3) / 2
}

// ExposureFactor maps uniform draws to Beta-distributed exposure factors
// rescaled into r. The Beta shape introduces the configured tail weight;
// the linear rescale preserves the declared bounds.
func ExposureFactor(u []float64, r risk.Range, kurtosis float64) []float64 {
	shape := BetaShape(kurtosis)
	beta := distuv.Beta{Alpha: shape, Beta: shape}
	out := make([]float64, len(u))
	for i, v := range u {
		out[i] = r.Min + beta.Quantile(v)*r.Width()
	}
	return out
}

// OccurrenceRate maps uniform draws to Poisson-shaped annual rates within
// r via a truncated inverse CDF. The Poisson rate is the range midpoint at
// AROResolution scale and its support is restricted to
// [AROResolution*r.Min, AROResolution*r.Max], so every output lies in r.
func OccurrenceRate(u []float64, r risk.Range) []float64 {
	lo := int(math.Ceil(r.Min * AROResolution))
	hi := int(math.Floor(r.Max * AROResolution))
	if hi < lo {
		hi = lo
	}
	pois := distuv.Poisson{Lambda: AROResolution * (r.Min + r.Max) / 2}

	cdfBelow := 0.0
	if lo > 0 {
		cdfBelow = pois.CDF(float64(lo - 1))
	}
	mass := pois.CDF(float64(hi)) - cdfBelow

	out := make([]float64, len(u))
	for i, v := range u {
		if mass <= 0 {
			// The truncated support carries no probability mass at this
			// resolution; every draw collapses to the nearest count.
			out[i] = clamp(float64(lo)/AROResolution, r.Min, r.Max)
			continue
		}
		target := cdfBelow + v*mass
		k := quantileSearch(pois, lo, hi, target)
		out[i] = clamp(float64(k)/AROResolution, r.Min, r.Max)
	}
	return out
}

// quantileSearch finds the smallest count k in [lo, hi] with CDF(k) >= p.
func quantileSearch(pois distuv.Poisson, lo, hi int, p float64) int {
	for lo < hi {
		mid := (lo + hi) / 2
		if pois.CDF(float64(mid)) >= p {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Uniform rescales uniform draws into r and clips the result, correcting
// any floating-point overshoot introduced by the scrambling step. Used for
// cost adjustments and vendor control effectiveness, where no stronger
// distributional assumption is justified.
func Uniform(u []float64, r risk.Range) []float64 {
	out := make([]float64, len(u))
	for i, v := range u {
		out[i] = clamp(r.Min+v*r.Width(), r.Min, r.Max)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
