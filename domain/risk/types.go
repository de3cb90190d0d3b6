package risk

import (
	"gorosi/domain/core"
)

// Range is an inclusive [Min, Max] interval for an uncertain input. A
// degenerate range (Min == Max) is treated as a fixed constant everywhere:
// it is excluded from sampling and from sensitivity analysis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Fixed reports whether the range collapses to a point value.
func (r Range) Fixed() bool {
	return r.Min == r.Max
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Point builds a degenerate range holding a single value.
func Point(v float64) Range {
	return Range{Min: v, Max: v}
}

// Control is one security control offering: a base annualized cost and the
// fraction by which it reduces the annual rate of occurrence. Reduction is a
// degenerate range in sequencing mode and a true range in vendor mode.
type Control struct {
	Cost      float64 `json:"cost"`
	Reduction Range   `json:"reduction"`
}

// Scenario is the complete, validated input for one engine invocation.
// Entities derived from it are created once per call and are immutable.
type Scenario struct {
	AssetValue     float64   `json:"asset_value"`
	EF             Range     `json:"ef_range"`
	ARO            Range     `json:"aro_range"`
	CostAdjustment Range     `json:"cost_adjustment_range"`
	Controls       []Control `json:"controls"`
	SampleCount    int       `json:"sample_count"`
	Kurtosis       float64   `json:"kurtosis"`
	Seed           int64     `json:"seed"`
}

// Defaults matching the reference simulator calibration.
const (
	DefaultSampleCount = 16384 // 2^14
	DefaultKurtosis    = 1.7   // arcsine exposure-factor shape (alpha = beta = 0.5)
	DefaultSeed        = 42
)

// NumControls returns the number of controls; in sequencing mode this is
// also the number of simulated years, in vendor mode the number of vendors.
func (s *Scenario) NumControls() int {
	return len(s.Controls)
}

// ControlCosts returns the base cost of every control in declaration order.
func (s *Scenario) ControlCosts() []float64 {
	costs := make([]float64, len(s.Controls))
	for i, c := range s.Controls {
		costs[i] = c.Cost
	}
	return costs
}

// YearOutcome holds the per-year figures for one permutation, averaged
// across all Monte Carlo draws.
type YearOutcome struct {
	ALEBefore      float64 `json:"ale_before"`
	ALEAfter       float64 `json:"ale_after"`
	ControlCost    float64 `json:"control_cost"`
	CumulativeCost float64 `json:"total_cost"`
	ROSI           float64 `json:"rosi"`
}

// PermutationResult scores one ordering of controls. Permutation holds
// 1-based control ids in deployment order; TotalROSI is the across-sample
// mean of the per-sample sum of yearly ROSI values.
type PermutationResult struct {
	Permutation []int         `json:"permutation"`
	Years       []YearOutcome `json:"years"`
	TotalROSI   float64       `json:"total_rosi"`
}

// CostEntry is the compounded cost of one control in one year.
type CostEntry struct {
	Cost       float64 `json:"cost"`
	Adjustment float64 `json:"adjustment"`
}

// CostSchedule maps year index (0..N) -> control index (0..N-1) -> entry.
// Year 0 carries the base costs with zero adjustment.
type CostSchedule [][]CostEntry

// DistributionSummary is the statistical digest of one sampled output.
type DistributionSummary struct {
	Mean           float64            `json:"mean"`
	Median         float64            `json:"median"`
	Mode           float64            `json:"mode"`
	ModePercentage float64            `json:"mode_percentage"`
	StdDev         float64            `json:"std_dev"`
	Percentiles    map[string]float64 `json:"percentiles"`
}

// VendorStatistic aggregates one vendor's simulated outcomes.
type VendorStatistic struct {
	VendorID       int                 `json:"vendor_id"`
	ControlCost    float64             `json:"control_cost"`
	ReductionRange Range               `json:"control_reduction_range"`
	ALEBefore      DistributionSummary `json:"ale_before"`
	ALEAfter       DistributionSummary `json:"ale_after"`
	ROSI           DistributionSummary `json:"rosi"`

	MeanALEReduction float64 `json:"mean_ale_reduction"`
	// First percentile (1..100) of ALE-after with a non-zero value, and
	// that value. Zero percentile means every percentile was zero.
	FirstNonZeroPercentile int     `json:"first_nonzero_percentile_ale_after"`
	FirstNonZeroValue      float64 `json:"first_nonzero_value_ale_after"`
}

// SensitivityIndex holds the Sobol indices for one varying parameter.
type SensitivityIndex struct {
	S1     float64 `json:"S1"`
	S1Conf float64 `json:"S1_conf"`
	ST     float64 `json:"ST"`
	STConf float64 `json:"ST_conf"`
}

// SensitivityResult maps parameter name -> indices. Empty when no
// parameter varies.
type SensitivityResult map[string]SensitivityIndex

// SequenceFindings is the top-line outcome of the sequencing problem.
type SequenceFindings struct {
	BestPermutation []int        `json:"best_permutation"`
	BestROSI        float64      `json:"best_rosi"`
	CostSchedule    CostSchedule `json:"control_cost_values"`
}

// VendorFindings is the top-line outcome of the vendor problem. Both
// rankings list vendor ids, best first; they may disagree by design.
type VendorFindings struct {
	BestVendor          []int   `json:"best_vendor"`
	MostEffectiveVendor []int   `json:"most_effective_vendor"`
	BestMeanROSI        float64 `json:"best_mean_rosi"`
}

// SequenceParameters echoes the validated sequencing inputs.
type SequenceParameters struct {
	AssetValue        float64   `json:"asset_value"`
	EFRange           []float64 `json:"ef_range"`
	ARORange          []float64 `json:"aro_range"`
	CostAdjustment    []float64 `json:"cost_adjustment_range"`
	ControlCosts      []float64 `json:"control_costs"`
	ControlReductions []float64 `json:"control_reductions"`
	NumYears          int       `json:"num_years"`
	NumSamples        int       `json:"num_samples"`
	Kurtosis          float64   `json:"kurtosis"`
	Seed              int64     `json:"seed"`
}

// VendorParameters echoes the validated vendor-assessment inputs.
type VendorParameters struct {
	AssetValue      float64     `json:"asset_value"`
	EFRange         []float64   `json:"ef_range"`
	ARORange        []float64   `json:"aro_range"`
	ControlCosts    []float64   `json:"control_costs"`
	ReductionRanges [][]float64 `json:"control_reduction_ranges"`
	NumVendors      int         `json:"num_vendors"`
	NumSamples      int         `json:"num_samples"`
	Kurtosis        float64     `json:"kurtosis"`
	Seed            int64       `json:"seed"`
}

// SequenceResult is the JSON-serializable outcome of
// OptimizeControlSequence.
type SequenceResult struct {
	RunID                core.RunID          `json:"run_id"`
	SimulationParameters SequenceParameters  `json:"simulation_parameters"`
	Results              SequenceFindings    `json:"results"`
	RankedPermutations   []PermutationResult `json:"ranked_permutations"`
	SensitivityResults   SensitivityResult   `json:"sensitivity_results"`
	RuntimeMs            int64               `json:"runtime_ms"`
	Fingerprint          core.Hash           `json:"fingerprint"`
}

// VendorResult is the JSON-serializable outcome of AssessVendors.
type VendorResult struct {
	RunID                core.RunID        `json:"run_id"`
	SimulationParameters VendorParameters  `json:"simulation_parameters"`
	Results              VendorFindings    `json:"results"`
	VendorStatistics     []VendorStatistic `json:"vendor_statistics"`
	SensitivityResults   SensitivityResult `json:"sensitivity_results"`
	RuntimeMs            int64             `json:"runtime_ms"`
	Fingerprint          core.Hash         `json:"fingerprint"`
}
