package distribution

import (
	"fmt"

	"gorosi/domain/core"
	"gorosi/domain/risk"
	"gorosi/internal/sampling"
)

// SampleSet holds the realized draws for one simulation run: three matrices
// of shape [samples x columns] where a column is a simulated year
// (sequencing mode) or a vendor (vendor mode). Adjust carries the cost
// adjustment draws in sequencing mode and the per-vendor control
// effectiveness draws in vendor mode. A SampleSet is immutable once built
// and is shared read-only across every permutation or vendor evaluation.
type SampleSet struct {
	EF     [][]float64
	ARO    [][]float64
	Adjust [][]float64
}

// Samples returns the number of rows.
func (s *SampleSet) Samples() int {
	return len(s.EF)
}

// Parameter naming shared with the sensitivity analyzer.
const (
	ParamEF           = "EF"
	ParamARO          = "ARO"
	ParamCostVariance = "cost_variance"
)

// ReductionParam names one vendor's effectiveness parameter (1-based).
func ReductionParam(vendor int) string {
	return fmt.Sprintf("control_reduction_%d", vendor)
}

func efColumn(year int) string  { return fmt.Sprintf("EF_%d", year) }
func aroColumn(year int) string { return fmt.Sprintf("ARO_%d", year) }
func adjColumn(year int) string { return fmt.Sprintf("cost_adj_%d", year) }

// SequenceSamples materializes the SampleSet for the sequencing problem:
// one EF, ARO and cost-adjustment column per simulated year. Degenerate
// ranges are pruned before sampling and re-inserted as constants, keeping
// the Sobol dimensionality minimal.
func SequenceSamples(s *risk.Scenario, years int) (*SampleSet, error) {
	if s.SampleCount < 1 {
		return nil, core.ErrEmptySampleSet
	}
	var params []risk.Parameter
	for y := 1; y <= years; y++ {
		params = append(params, risk.VaryingParam(efColumn(y), s.EF))
	}
	for y := 1; y <= years; y++ {
		params = append(params, risk.VaryingParam(aroColumn(y), s.ARO))
	}
	for y := 1; y <= years; y++ {
		params = append(params, risk.VaryingParam(adjColumn(y), s.CostAdjustment))
	}

	problem := risk.Partition(params)
	uniforms, err := sampling.Uniforms(problem, s.SampleCount, s.Seed)
	if err != nil {
		return nil, err
	}

	set := &SampleSet{
		EF:     allocate(s.SampleCount, years),
		ARO:    allocate(s.SampleCount, years),
		Adjust: allocate(s.SampleCount, years),
	}
	for y := 0; y < years; y++ {
		fillColumn(set.EF, y, uniforms[efColumn(y+1)], s.EF, func(u []float64) []float64 {
			return ExposureFactor(u, s.EF, s.Kurtosis)
		})
		fillColumn(set.ARO, y, uniforms[aroColumn(y+1)], s.ARO, func(u []float64) []float64 {
			return OccurrenceRate(u, s.ARO)
		})
		fillColumn(set.Adjust, y, uniforms[adjColumn(y+1)], s.CostAdjustment, func(u []float64) []float64 {
			return Uniform(u, s.CostAdjustment)
		})
	}
	return set, nil
}

// VendorSamples materializes the SampleSet for the vendor problem: one EF
// and ARO column per vendor plus one effectiveness column per vendor,
// clipped to the vendor's declared range.
func VendorSamples(s *risk.Scenario, vendors int) (*SampleSet, error) {
	if s.SampleCount < 1 {
		return nil, core.ErrEmptySampleSet
	}
	var params []risk.Parameter
	for v := 1; v <= vendors; v++ {
		params = append(params, risk.VaryingParam(efColumn(v), s.EF))
	}
	for v := 1; v <= vendors; v++ {
		params = append(params, risk.VaryingParam(aroColumn(v), s.ARO))
	}
	for v := 1; v <= vendors; v++ {
		params = append(params, risk.VaryingParam(ReductionParam(v), s.Controls[v-1].Reduction))
	}

	problem := risk.Partition(params)
	uniforms, err := sampling.Uniforms(problem, s.SampleCount, s.Seed)
	if err != nil {
		return nil, err
	}

	set := &SampleSet{
		EF:     allocate(s.SampleCount, vendors),
		ARO:    allocate(s.SampleCount, vendors),
		Adjust: allocate(s.SampleCount, vendors),
	}
	for v := 0; v < vendors; v++ {
		reduction := s.Controls[v].Reduction
		fillColumn(set.EF, v, uniforms[efColumn(v+1)], s.EF, func(u []float64) []float64 {
			return ExposureFactor(u, s.EF, s.Kurtosis)
		})
		fillColumn(set.ARO, v, uniforms[aroColumn(v+1)], s.ARO, func(u []float64) []float64 {
			return OccurrenceRate(u, s.ARO)
		})
		fillColumn(set.Adjust, v, uniforms[ReductionParam(v+1)], reduction, func(u []float64) []float64 {
			return Uniform(u, reduction)
		})
	}
	return set, nil
}

func allocate(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// fillColumn writes one mapped column, or the fixed constant when the
// range is degenerate and was never sampled.
func fillColumn(dst [][]float64, col int, u []float64, r risk.Range, mapFn func([]float64) []float64) {
	if u == nil {
		for i := range dst {
			dst[i][col] = r.Min
		}
		return
	}
	mapped := mapFn(u)
	for i := range dst {
		dst[i][col] = mapped[i]
	}
}
