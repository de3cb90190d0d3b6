package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"gorosi/domain/risk"
	"gorosi/internal/distribution"
)

// PercentileLadder is the percentile set reported for every vendor output.
var PercentileLadder = []float64{1, 2.5, 5, 10, 25, 75, 90, 95, 97.5, 99}

// VendorAggregator computes per-vendor distributional statistics from a
// shared SampleSet.
type VendorAggregator struct {
	modes ModeEstimator
}

// NewVendorAggregator builds an aggregator with the given mode estimator.
func NewVendorAggregator(modes ModeEstimator) *VendorAggregator {
	return &VendorAggregator{modes: modes}
}

// Assess simulates every vendor independently: each sample draws the
// shared EF and ARO plus the vendor's own effectiveness, and the vendor's
// ALE-before, ALE-after and ROSI distributions are summarized.
func (a *VendorAggregator) Assess(s *risk.Scenario, set *distribution.SampleSet) []risk.VendorStatistic {
	vendors := s.NumControls()
	samples := set.Samples()

	out := make([]risk.VendorStatistic, vendors)
	for v := 0; v < vendors; v++ {
		aleBefore := make([]float64, samples)
		aleAfter := make([]float64, samples)
		rosi := make([]float64, samples)

		for i := 0; i < samples; i++ {
			ef := set.EF[i][v]
			aro := set.ARO[i][v]
			effectiveness := set.Adjust[i][v]

			before := ALE(s.AssetValue, ef, aro)
			after := ALE(s.AssetValue, ef, aro*(1-effectiveness))

			aleBefore[i] = before
			aleAfter[i] = after
			rosi[i] = ROSI(before, after, s.Controls[v].Cost)
		}

		stat := risk.VendorStatistic{
			VendorID:       v + 1,
			ControlCost:    s.Controls[v].Cost,
			ReductionRange: s.Controls[v].Reduction,
			ALEBefore:      a.summarize(aleBefore),
			ALEAfter:       a.summarize(aleAfter),
			ROSI:           a.summarize(rosi),
		}
		stat.MeanALEReduction = (stat.ALEBefore.Mean - stat.ALEAfter.Mean) / stat.ALEBefore.Mean
		stat.FirstNonZeroPercentile, stat.FirstNonZeroValue = firstNonZeroPercentile(aleAfter)
		out[v] = stat
	}
	return out
}

// RankByROSI orders vendor ids by mean ROSI descending: the
// cost-efficiency ranking.
func RankByROSI(statistics []risk.VendorStatistic) []int {
	return rankVendors(statistics, func(i, j risk.VendorStatistic) bool {
		return i.ROSI.Mean > j.ROSI.Mean
	})
}

// RankByResidualRisk orders vendor ids by mean ALE-after ascending: the
// cost-blind absolute risk-reduction ranking. It may disagree with
// RankByROSI by design.
func RankByResidualRisk(statistics []risk.VendorStatistic) []int {
	return rankVendors(statistics, func(i, j risk.VendorStatistic) bool {
		return i.ALEAfter.Mean < j.ALEAfter.Mean
	})
}

func rankVendors(statistics []risk.VendorStatistic, less func(i, j risk.VendorStatistic) bool) []int {
	ordered := make([]risk.VendorStatistic, len(statistics))
	copy(ordered, statistics)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})
	ids := make([]int, len(ordered))
	for i, s := range ordered {
		ids[i] = s.VendorID
	}
	return ids
}

func (a *VendorAggregator) summarize(values []float64) risk.DistributionSummary {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdDev, _ := stats.StandardDeviation(values)
	mode, modePct := a.modes.Mode(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	percentiles := make(map[string]float64, len(PercentileLadder))
	for _, p := range PercentileLadder {
		percentiles[percentileKey(p)] = percentile(sorted, p)
	}

	return risk.DistributionSummary{
		Mean:           mean,
		Median:         median,
		Mode:           mode,
		ModePercentage: modePct,
		StdDev:         stdDev,
		Percentiles:    percentiles,
	}
}

func percentileKey(p float64) string {
	return fmt.Sprintf("p%g", p)
}

// percentile interpolates the p-th percentile from an already sorted
// slice. The low rungs stay defined at any sample count: with n samples
// the rank p/100 x (n-1) lands between the two closest order statistics,
// so p1 of a 16-sample vector resolves near the sorted minimum instead
// of failing.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// firstNonZeroPercentile scans the whole percentiles 1..100 in order and
// returns the first whose value is positive, with that value. A zero
// percentile means the distribution never leaves zero.
func firstNonZeroPercentile(values []float64) (int, float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	for p := 1; p <= 100; p++ {
		if v := percentile(sorted, float64(p)); v > 0 {
			return p, v
		}
	}
	return 0, 0
}
