package risk

import (
	"fmt"

	"gorosi/domain/core"
)

// Kurtosis bounds for the symmetric Beta shape solve; outside this open
// interval the shape parameter is undefined or non-positive.
const (
	KurtosisMin = 1.2
	KurtosisMax = 3.2
)

// MaxReduction caps a control's risk reduction; a reduction of 1.0 would
// eliminate the risk outright and break the ROSI comparison.
const MaxReduction = 0.99

// Normalize fills zero-valued tuning fields with the reference defaults.
func (s *Scenario) Normalize() {
	if s.SampleCount == 0 {
		s.SampleCount = DefaultSampleCount
	}
	if s.Kurtosis == 0 {
		s.Kurtosis = DefaultKurtosis
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
}

// Validate checks every scenario invariant shared by both decision
// problems. It runs before any sampling; a scenario that passes cannot
// fail validation later in the pipeline.
func (s *Scenario) Validate() error {
	if s.AssetValue <= 0 {
		return core.NewScenarioError("asset_value", "must be greater than 0")
	}
	if err := validateRange("ef_range", s.EF); err != nil {
		return err
	}
	if s.EF.Min < 0 || s.EF.Max > 1 {
		return core.NewScenarioError("ef_range", "must lie within [0, 1]")
	}
	if err := validateRange("aro_range", s.ARO); err != nil {
		return err
	}
	if s.ARO.Min <= 0 {
		return core.NewScenarioError("aro_range", "must be greater than 0")
	}
	if err := validateRange("cost_adjustment_range", s.CostAdjustment); err != nil {
		return err
	}
	if s.CostAdjustment.Min < -1 || s.CostAdjustment.Max > 1 {
		return core.NewScenarioError("cost_adjustment_range", "must lie within [-1, 1]")
	}
	if len(s.Controls) == 0 {
		return core.NewScenarioError("controls", "at least one control must be provided")
	}
	for i, c := range s.Controls {
		field := fmt.Sprintf("controls[%d]", i)
		if c.Cost <= 0 {
			return core.NewScenarioError(field+".cost", "must be greater than 0")
		}
		if err := validateRange(field+".reduction", c.Reduction); err != nil {
			return err
		}
		if c.Reduction.Min < 0 || c.Reduction.Max > MaxReduction {
			return core.NewScenarioError(field+".reduction",
				fmt.Sprintf("must lie within [0, %g]", MaxReduction))
		}
	}
	if s.SampleCount <= 0 {
		return core.NewScenarioError("sample_count", "must be greater than 0")
	}
	if s.Kurtosis <= KurtosisMin || s.Kurtosis >= KurtosisMax {
		return core.NewScenarioError("kurtosis",
			fmt.Sprintf("must lie within (%g, %g)", KurtosisMin, KurtosisMax))
	}
	return nil
}

func validateRange(field string, r Range) error {
	if r.Min > r.Max {
		return core.NewScenarioError(field, "min must not exceed max")
	}
	return nil
}

// NewSequenceScenario assembles and validates a sequencing-mode scenario.
// Control reductions are point values; num_years equals len(costs).
func NewSequenceScenario(assetValue float64, ef, aro, costAdjustment Range, costs, reductions []float64, sampleCount int, kurtosis float64, seed int64) (*Scenario, error) {
	if len(costs) != len(reductions) {
		return nil, core.NewScenarioError("control_reductions",
			fmt.Sprintf("length %d does not match control_costs length %d", len(reductions), len(costs)))
	}
	controls := make([]Control, len(costs))
	for i := range costs {
		controls[i] = Control{Cost: costs[i], Reduction: Point(reductions[i])}
	}
	s := &Scenario{
		AssetValue:     assetValue,
		EF:             ef,
		ARO:            aro,
		CostAdjustment: costAdjustment,
		Controls:       controls,
		SampleCount:    sampleCount,
		Kurtosis:       kurtosis,
		Seed:           seed,
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewVendorScenario assembles and validates a vendor-mode scenario. Each
// vendor's effectiveness is a range; there is no cost adjustment.
func NewVendorScenario(assetValue float64, ef, aro Range, costs []float64, reductions []Range, sampleCount int, kurtosis float64, seed int64) (*Scenario, error) {
	if len(costs) != len(reductions) {
		return nil, core.NewScenarioError("control_reduction_ranges",
			fmt.Sprintf("length %d does not match control_costs length %d", len(reductions), len(costs)))
	}
	controls := make([]Control, len(costs))
	for i := range costs {
		controls[i] = Control{Cost: costs[i], Reduction: reductions[i]}
	}
	s := &Scenario{
		AssetValue:     assetValue,
		EF:             ef,
		ARO:            aro,
		CostAdjustment: Point(0),
		Controls:       controls,
		SampleCount:    sampleCount,
		Kurtosis:       kurtosis,
		Seed:           seed,
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
