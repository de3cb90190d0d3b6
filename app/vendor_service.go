package app

import (
	"context"
	"fmt"
	"time"

	"gorosi/domain/core"
	"gorosi/domain/risk"
	"gorosi/internal/distribution"
	"gorosi/internal/engine"
)

// VendorService orchestrates the vendor-selection problem: every vendor is
// simulated against the shared threat draws and summarized into
// distributional statistics with two rankings.
type VendorService struct {
	aggregator *engine.VendorAggregator
}

// NewVendorService creates a vendor-assessment service.
func NewVendorService(modes engine.ModeEstimator) *VendorService {
	return &VendorService{aggregator: engine.NewVendorAggregator(modes)}
}

// VendorRequest defines the inputs for one vendor-assessment run. Each
// vendor is a control cost paired with an effectiveness range. Zero-valued
// tuning fields fall back to the engine defaults.
type VendorRequest struct {
	AssetValue      float64      `json:"asset_value"`
	EF              risk.Range   `json:"ef_range"`
	ARO             risk.Range   `json:"aro_range"`
	ControlCosts    []float64    `json:"control_costs"`
	ReductionRanges []risk.Range `json:"control_reduction_ranges"`
	SampleCount     int          `json:"num_samples"`
	Kurtosis        float64      `json:"kurtosis"`
	Seed            int64        `json:"seed"`
}

// AssessVendors runs the full vendor pipeline and returns the assembled,
// fingerprinted result. The best_vendor ranking orders by mean ROSI, the
// most_effective_vendor ranking by mean residual ALE; the two may
// disagree.
func (s *VendorService) AssessVendors(ctx context.Context, req VendorRequest) (*risk.VendorResult, error) {
	startTime := time.Now()

	scenario, err := risk.NewVendorScenario(
		req.AssetValue, req.EF, req.ARO,
		req.ControlCosts, req.ReductionRanges,
		req.SampleCount, req.Kurtosis, req.Seed,
	)
	if err != nil {
		return nil, err
	}
	vendors := scenario.NumControls()

	set, err := distribution.VendorSamples(scenario, vendors)
	if err != nil {
		return nil, fmt.Errorf("vendor sampling: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	statistics := s.aggregator.Assess(scenario, set)

	sensitivity, err := engine.Sensitivity(
		vendorProblem(scenario), scenario.SampleCount, scenario.Seed,
		vendorModel(scenario),
	)
	if err != nil {
		return nil, fmt.Errorf("sensitivity analysis: %w", err)
	}

	byROSI := engine.RankByROSI(statistics)
	result := &risk.VendorResult{
		SimulationParameters: vendorParameters(scenario, vendors),
		Results: risk.VendorFindings{
			BestVendor:          byROSI,
			MostEffectiveVendor: engine.RankByResidualRisk(statistics),
			BestMeanROSI:        statistics[byROSI[0]-1].ROSI.Mean,
		},
		VendorStatistics:   statistics,
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

// vendorProblem builds the sensitivity problem for vendor assessment:
// exposure factor, occurrence rate and one effectiveness parameter per
// vendor, with fixed ranges pruned.
func vendorProblem(s *risk.Scenario) risk.Problem {
	params := []risk.Parameter{
		risk.VaryingParam(distribution.ParamEF, s.EF),
		risk.VaryingParam(distribution.ParamARO, s.ARO),
	}
	for v, c := range s.Controls {
		params = append(params, risk.VaryingParam(distribution.ReductionParam(v+1), c.Reduction))
	}
	return risk.Partition(params)
}

// vendorModel is the scalar proxy for the analyzer: the portfolio ROSI of
// deploying every vendor's control at once, reductions chained
// multiplicatively and costs summed.
func vendorModel(s *risk.Scenario) engine.Model {
	return func(p map[string]float64) float64 {
		aleBefore := engine.ALE(s.AssetValue, p[distribution.ParamEF], p[distribution.ParamARO])
		residual := 1.0
		totalCost := 0.0
		for v, c := range s.Controls {
			residual *= 1 - p[distribution.ReductionParam(v+1)]
			totalCost += c.Cost
		}
		return engine.ROSI(aleBefore, aleBefore*residual, totalCost)
	}
}

func vendorParameters(s *risk.Scenario, vendors int) risk.VendorParameters {
	reductions := make([][]float64, len(s.Controls))
	for i, c := range s.Controls {
		reductions[i] = rangePair(c.Reduction)
	}
	return risk.VendorParameters{
		AssetValue:      s.AssetValue,
		EFRange:         rangePair(s.EF),
		ARORange:        rangePair(s.ARO),
		ControlCosts:    s.ControlCosts(),
		ReductionRanges: reductions,
		NumVendors:      vendors,
		NumSamples:      s.SampleCount,
		Kurtosis:        s.Kurtosis,
		Seed:            s.Seed,
	}
}
