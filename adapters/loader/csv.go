package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gorosi/app"
	"gorosi/domain/core"
	"gorosi/domain/risk"
)

// CSV batch loader: one scenario per row. Shared columns are asset_value,
// ef_min/ef_max and aro_min/aro_max, plus the optional num_samples,
// kurtosis and seed tuning columns. Controls are discovered by scanning
// control_cost_1, control_cost_2, ... until the first missing column;
// sequencing rows pair each cost with control_reduction_i and vendor rows
// with control_reduction_i_min/control_reduction_i_max (or a single
// control_reduction_i column for a fixed effectiveness).

type record struct {
	header map[string]int
	fields []string
	row    int
}

func (r record) lookup(name string) (string, bool) {
	idx, ok := r.header[name]
	if !ok || idx >= len(r.fields) || r.fields[idx] == "" {
		return "", false
	}
	return r.fields[idx], true
}

func (r record) float(name string) (float64, bool, error) {
	raw, ok := r.lookup(name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("row %d: column %s: %w", r.row, name, err)
	}
	return v, true, nil
}

func (r record) floatOr(name string, fallback float64) (float64, error) {
	v, ok, err := r.float(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

func (r record) rangeCols(minCol, maxCol string) (risk.Range, error) {
	min, err := r.floatOr(minCol, 0)
	if err != nil {
		return risk.Range{}, err
	}
	max, err := r.floatOr(maxCol, min)
	if err != nil {
		return risk.Range{}, err
	}
	return risk.Range{Min: min, Max: max}, nil
}

// LoadSequenceBatch parses sequencing-mode scenarios from CSV.
func LoadSequenceBatch(r io.Reader) ([]app.SequenceRequest, error) {
	var requests []app.SequenceRequest
	err := forEachRecord(r, func(rec record) error {
		req, err := sequenceRow(rec)
		if err != nil {
			return err
		}
		requests = append(requests, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// LoadVendorBatch parses vendor-mode scenarios from CSV.
func LoadVendorBatch(r io.Reader) ([]app.VendorRequest, error) {
	var requests []app.VendorRequest
	err := forEachRecord(r, func(rec record) error {
		req, err := vendorRow(rec)
		if err != nil {
			return err
		}
		requests = append(requests, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func forEachRecord(r io.Reader, visit func(record) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err == io.EOF {
		return core.ErrEmptyBatch
	}
	if err != nil {
		return fmt.Errorf("reading csv header: %w", err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[name] = i
	}

	rows := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading csv row %d: %w", rows+1, err)
		}
		rows++
		if err := visit(record{header: header, fields: fields, row: rows}); err != nil {
			return err
		}
	}
	if rows == 0 {
		return core.ErrEmptyBatch
	}
	return nil
}

func sharedColumns(rec record) (assetValue float64, ef, aro risk.Range, sampleCount int, kurtosis float64, seed int64, err error) {
	assetValue, err = rec.floatOr("asset_value", 0)
	if err != nil {
		return
	}
	ef, err = rec.rangeCols("ef_min", "ef_max")
	if err != nil {
		return
	}
	aro, err = rec.rangeCols("aro_min", "aro_max")
	if err != nil {
		return
	}
	samples, err2 := rec.floatOr("num_samples", 0)
	if err2 != nil {
		err = err2
		return
	}
	sampleCount = int(samples)
	kurtosis, err = rec.floatOr("kurtosis", 0)
	if err != nil {
		return
	}
	seedV, err2 := rec.floatOr("seed", 0)
	if err2 != nil {
		err = err2
		return
	}
	seed = int64(seedV)
	return
}

func sequenceRow(rec record) (app.SequenceRequest, error) {
	var req app.SequenceRequest
	assetValue, ef, aro, samples, kurtosis, seed, err := sharedColumns(rec)
	if err != nil {
		return req, err
	}
	costAdjustment, err := rec.rangeCols("cost_adjustment_min", "cost_adjustment_max")
	if err != nil {
		return req, err
	}

	var costs, reductions []float64
	for c := 1; ; c++ {
		cost, ok, err := rec.float(controlCostCol(c))
		if err != nil {
			return req, err
		}
		if !ok {
			break
		}
		reduction, ok, err := rec.float(fmt.Sprintf("control_reduction_%d", c))
		if err != nil {
			return req, err
		}
		if !ok {
			return req, core.NewMissingControlError(rec.row, c)
		}
		costs = append(costs, cost)
		reductions = append(reductions, reduction)
	}

	return app.SequenceRequest{
		AssetValue:        assetValue,
		EF:                ef,
		ARO:               aro,
		CostAdjustment:    costAdjustment,
		ControlCosts:      costs,
		ControlReductions: reductions,
		SampleCount:       samples,
		Kurtosis:          kurtosis,
		Seed:              seed,
	}, nil
}

func vendorRow(rec record) (app.VendorRequest, error) {
	var req app.VendorRequest
	assetValue, ef, aro, samples, kurtosis, seed, err := sharedColumns(rec)
	if err != nil {
		return req, err
	}

	var costs []float64
	var reductions []risk.Range
	for c := 1; ; c++ {
		cost, ok, err := rec.float(controlCostCol(c))
		if err != nil {
			return req, err
		}
		if !ok {
			break
		}
		min, okMin, err := rec.float(fmt.Sprintf("control_reduction_%d_min", c))
		if err != nil {
			return req, err
		}
		max, okMax, err := rec.float(fmt.Sprintf("control_reduction_%d_max", c))
		if err != nil {
			return req, err
		}
		if !okMin && !okMax {
			// A single-column reduction collapses to a point range.
			point, ok, err := rec.float(fmt.Sprintf("control_reduction_%d", c))
			if err != nil {
				return req, err
			}
			if !ok {
				return req, core.NewMissingControlError(rec.row, c)
			}
			min, max = point, point
		} else if !okMin || !okMax {
			return req, core.NewMissingControlError(rec.row, c)
		}
		costs = append(costs, cost)
		reductions = append(reductions, risk.Range{Min: min, Max: max})
	}

	return app.VendorRequest{
		AssetValue:      assetValue,
		EF:              ef,
		ARO:             aro,
		ControlCosts:    costs,
		ReductionRanges: reductions,
		SampleCount:     samples,
		Kurtosis:        kurtosis,
		Seed:            seed,
	}, nil
}

func controlCostCol(c int) string {
	return fmt.Sprintf("control_cost_%d", c)
}
