package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorosi/domain/core"
	"gorosi/domain/risk"
	"gorosi/internal/distribution"
	"gorosi/internal/engine"
)

// SequenceService orchestrates the control-deployment sequencing problem:
// sampling, cost compounding, exhaustive permutation ranking and
// sensitivity analysis.
type SequenceService struct{}

// NewSequenceService creates a sequencing service.
func NewSequenceService() *SequenceService {
	return &SequenceService{}
}

// SequenceRequest defines the inputs for one sequencing run. Zero-valued
// tuning fields (SampleCount, Kurtosis, Seed) fall back to the engine
// defaults.
type SequenceRequest struct {
	AssetValue        float64    `json:"asset_value"`
	EF                risk.Range `json:"ef_range"`
	ARO               risk.Range `json:"aro_range"`
	CostAdjustment    risk.Range `json:"cost_adjustment_range"`
	ControlCosts      []float64  `json:"control_costs"`
	ControlReductions []float64  `json:"control_reductions"`
	SampleCount       int        `json:"num_samples"`
	Kurtosis          float64    `json:"kurtosis"`
	Seed              int64      `json:"seed"`
}

// OptimizeControlSequence runs the full sequencing pipeline and returns
// the assembled, fingerprinted result. The number of simulated years
// equals the number of controls; every ordering is evaluated.
func (s *SequenceService) OptimizeControlSequence(ctx context.Context, req SequenceRequest) (*risk.SequenceResult, error) {
	startTime := time.Now()

	scenario, err := risk.NewSequenceScenario(
		req.AssetValue, req.EF, req.ARO, req.CostAdjustment,
		req.ControlCosts, req.ControlReductions,
		req.SampleCount, req.Kurtosis, req.Seed,
	)
	if err != nil {
		return nil, err
	}
	years := scenario.NumControls()

	set, err := distribution.SequenceSamples(scenario, years)
	if err != nil {
		return nil, fmt.Errorf("sequence sampling: %w", err)
	}
	schedule := engine.CompoundCosts(scenario, set, years)

	ranked := engine.RankPermutations(ctx, scenario, set, schedule)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sensitivity, err := engine.Sensitivity(
		sequenceProblem(scenario), scenario.SampleCount, scenario.Seed,
		sequenceModel(scenario),
	)
	if err != nil {
		return nil, fmt.Errorf("sensitivity analysis: %w", err)
	}

	best := ranked[0]
	result := &risk.SequenceResult{
		SimulationParameters: sequenceParameters(scenario, years),
		Results: risk.SequenceFindings{
			BestPermutation: best.Permutation,
			BestROSI:        best.TotalROSI,
			CostSchedule:    schedule,
		},
		RankedPermutations: ranked,
		SensitivityResults: sensitivity,
	}
	result.Fingerprint, err = fingerprint(result)
	if err != nil {
		return nil, err
	}
	result.RunID = core.RunID(core.NewID())
	result.RuntimeMs = time.Since(startTime).Milliseconds()
	return result, nil
}

// sequenceProblem builds the sensitivity problem for sequencing: exposure
// factor, occurrence rate and cost adjustment, with fixed ranges pruned.
func sequenceProblem(s *risk.Scenario) risk.Problem {
	return risk.Partition([]risk.Parameter{
		risk.VaryingParam(distribution.ParamEF, s.EF),
		risk.VaryingParam(distribution.ParamARO, s.ARO),
		risk.VaryingParam(distribution.ParamCostVariance, s.CostAdjustment),
	})
}

// sequenceModel is the scalar proxy whose variance the analyzer
// decomposes: the single-step ROSI of deploying the first control at its
// adjusted cost.
func sequenceModel(s *risk.Scenario) engine.Model {
	return func(p map[string]float64) float64 {
		aleBefore := engine.ALE(s.AssetValue, p[distribution.ParamEF], p[distribution.ParamARO])
		aleAfter := aleBefore * (1 - s.Controls[0].Reduction.Min)
		cost := s.Controls[0].Cost * (1 + p[distribution.ParamCostVariance])
		return engine.ROSI(aleBefore, aleAfter, cost)
	}
}

func sequenceParameters(s *risk.Scenario, years int) risk.SequenceParameters {
	reductions := make([]float64, len(s.Controls))
	for i, c := range s.Controls {
		reductions[i] = c.Reduction.Min
	}
	return risk.SequenceParameters{
		AssetValue:        s.AssetValue,
		EFRange:           rangePair(s.EF),
		ARORange:          rangePair(s.ARO),
		CostAdjustment:    rangePair(s.CostAdjustment),
		ControlCosts:      s.ControlCosts(),
		ControlReductions: reductions,
		NumYears:          years,
		NumSamples:        s.SampleCount,
		Kurtosis:          s.Kurtosis,
		Seed:              s.Seed,
	}
}

func rangePair(r risk.Range) []float64 {
	return []float64{r.Min, r.Max}
}

// fingerprint hashes the canonical JSON encoding of a result before the
// run-local fields (run id, fingerprint, runtime) are filled in, so
// identical inputs and seed always produce the same fingerprint.
func fingerprint(v any) (core.Hash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint encoding: %w", err)
	}
	return core.NewHash(data), nil
}
