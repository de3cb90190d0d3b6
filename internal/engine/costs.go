package engine

import (
	"gorosi/domain/risk"
	"gorosi/internal/distribution"
)

// CompoundCosts builds the year-by-control cost schedule. Year 0 holds the
// base costs with zero adjustment; for every later year each control's
// adjustment is the mean of a dynamically sized block of that control's
// adjustment draws, and cost(y) = cost(y-1) * (1 + adjustment).
//
// The block size spreads the sample budget evenly across all control-year
// slots: max(1, samples / (controls * years)). Block start indices wrap
// modulo the sample count so a budget smaller than controls*years stays
// well-defined. The adjustment itself is not clamped; a scenario whose
// adjustment range reaches -1 can drive a cost to zero or below, which is
// bounded away at validation time rather than corrected here.
func CompoundCosts(s *risk.Scenario, set *distribution.SampleSet, years int) risk.CostSchedule {
	controls := s.NumControls()
	schedule := make(risk.CostSchedule, years+1)

	schedule[0] = make([]risk.CostEntry, controls)
	for c, control := range s.Controls {
		schedule[0][c] = risk.CostEntry{Cost: control.Cost, Adjustment: 0}
	}

	samples := set.Samples()
	blockSize := samples / (controls * years)
	if blockSize < 1 {
		blockSize = 1
	}

	for year := 1; year <= years; year++ {
		schedule[year] = make([]risk.CostEntry, controls)
		for c := 0; c < controls; c++ {
			start := ((year-1)*controls + c) * blockSize
			sum := 0.0
			for i := 0; i < blockSize; i++ {
				sum += set.Adjust[(start+i)%samples][c%years]
			}
			adjustment := sum / float64(blockSize)

			prev := schedule[year-1][c].Cost
			schedule[year][c] = risk.CostEntry{
				Cost:       prev + prev*adjustment,
				Adjustment: adjustment,
			}
		}
	}
	return schedule
}
