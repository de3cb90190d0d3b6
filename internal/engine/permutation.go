package engine

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/semaphore"

	"gorosi/domain/risk"
	"gorosi/internal/distribution"
)

// Permutations enumerates every ordering of the 1-based control ids
// 1..n in lexicographic order. The enumeration order is the encounter
// order used to break ranking ties.
func Permutations(n int) [][]int {
	current := make([]int, n)
	for i := range current {
		current[i] = i + 1
	}

	var out [][]int
	for {
		perm := make([]int, n)
		copy(perm, current)
		out = append(out, perm)

		// Next lexicographic permutation.
		i := n - 2
		for i >= 0 && current[i] >= current[i+1] {
			i--
		}
		if i < 0 {
			return out
		}
		j := n - 1
		for current[j] <= current[i] {
			j--
		}
		current[i], current[j] = current[j], current[i]
		for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
			current[l], current[r] = current[r], current[l]
		}
	}
}

// EvaluatePermutation scores one deployment ordering across every sample
// draw. Risk compounds from the residual: year one starts from the draw's
// baseline ALE, each later year starts from the previous year's ALE-after,
// and every deployed control keeps suppressing the occurrence rate in all
// following years. The year's ROSI charges the deploying control's
// compounded cost for that year; the cumulative cost of everything
// deployed so far is reported alongside. Per-year figures and the total
// ROSI are across-sample means.
func EvaluatePermutation(s *risk.Scenario, set *distribution.SampleSet, schedule risk.CostSchedule, permutation []int) risk.PermutationResult {
	years := len(permutation)
	samples := set.Samples()

	sumYears := make([]risk.YearOutcome, years)
	sumTotal := 0.0

	for i := 0; i < samples; i++ {
		aleBefore := ALE(s.AssetValue, set.EF[i][0], set.ARO[i][0])
		residual := 1.0
		for y := 0; y < years; y++ {
			control := permutation[y]
			controlCost := schedule[y+1][control-1].Cost

			cumulativeCost := 0.0
			for k := 0; k <= y; k++ {
				cumulativeCost += schedule[y+1][permutation[k]-1].Cost
			}

			residual *= 1 - s.Controls[control-1].Reduction.Min
			aleAfter := ALE(s.AssetValue, set.EF[i][y], set.ARO[i][y]*residual)
			rosi := ROSI(aleBefore, aleAfter, controlCost)

			sumYears[y].ALEBefore += aleBefore
			sumYears[y].ALEAfter += aleAfter
			sumYears[y].ControlCost += controlCost
			sumYears[y].CumulativeCost += cumulativeCost
			sumYears[y].ROSI += rosi
			sumTotal += rosi

			aleBefore = aleAfter
		}
	}

	inv := 1 / float64(samples)
	for y := range sumYears {
		sumYears[y].ALEBefore *= inv
		sumYears[y].ALEAfter *= inv
		sumYears[y].ControlCost *= inv
		sumYears[y].CumulativeCost *= inv
		sumYears[y].ROSI *= inv
	}

	return risk.PermutationResult{
		Permutation: permutation,
		Years:       sumYears,
		TotalROSI:   sumTotal * inv,
	}
}

// RankPermutations evaluates all N! orderings and returns them sorted by
// total ROSI descending, ties broken by enumeration order. The search is
// exhaustive and O(N! * samples * N); control counts beyond single digits
// are computationally infeasible and the caller is expected to bound N.
//
// Evaluation runs in parallel across permutations; every worker reads the
// shared immutable SampleSet and schedule and writes only its own slot, so
// parallel and serial runs produce identical results.
func RankPermutations(ctx context.Context, s *risk.Scenario, set *distribution.SampleSet, schedule risk.CostSchedule) []risk.PermutationResult {
	permutations := Permutations(s.NumControls())
	results := make([]risk.PermutationResult, len(permutations))

	workers := int64(runtime.GOMAXPROCS(0))
	sem := semaphore.NewWeighted(workers)
	for idx, perm := range permutations {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		go func(idx int, perm []int) {
			defer sem.Release(1)
			results[idx] = EvaluatePermutation(s, set, schedule, perm)
		}(idx, perm)
	}
	// Wait for all in-flight evaluations.
	if err := sem.Acquire(ctx, workers); err == nil {
		sem.Release(workers)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalROSI > results[j].TotalROSI
	})
	return results
}
