package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gorosi/adapters/report"
	"gorosi/app"
	"gorosi/domain/core"
	"gorosi/domain/risk"
)

// handleSequence runs the sequencing problem from query parameters.
// Scenario faults map to 400, engine faults to 500.
func (a *App) handleSequence(w http.ResponseWriter, r *http.Request) {
	req, err := sequenceQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := a.sequence.OptimizeControlSequence(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, result)
}

// handleVendors runs the vendor assessment from query parameters.
func (a *App) handleVendors(w http.ResponseWriter, r *http.Request) {
	req, err := vendorQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := a.vendors.AssessVendors(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, result)
}

// handleSequenceReport renders the sequencing result as an HTML briefing.
func (a *App) handleSequenceReport(w http.ResponseWriter, r *http.Request) {
	req, err := sequenceQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := a.sequence.OptimizeControlSequence(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.RenderHTML(report.SequenceMarkdown(result)))
}

// handleVendorReport renders the vendor result as an HTML briefing.
func (a *App) handleVendorReport(w http.ResponseWriter, r *http.Request) {
	req, err := vendorQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := a.vendors.AssessVendors(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.RenderHTML(report.VendorMarkdown(result)))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// respondServiceError maps scenario rejections to 400 and everything else
// to 500.
func respondServiceError(w http.ResponseWriter, err error) {
	if core.IsScenarioError(err) {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	log.Printf("engine failure: %v", err)
	respondError(w, http.StatusInternalServerError, err)
}

// queryReader accumulates the first parse error while reading typed query
// parameters.
type queryReader struct {
	values url.Values
	err    error
}

func (q *queryReader) float(name string, fallback float64) float64 {
	raw := q.values.Get(name)
	if raw == "" || q.err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.err = fmt.Errorf("parameter %s: %w", name, err)
		return fallback
	}
	return v
}

func (q *queryReader) floats(name string) []float64 {
	raw := q.values.Get(name)
	if raw == "" || q.err != nil {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			q.err = fmt.Errorf("parameter %s: %w", name, err)
			return nil
		}
		out = append(out, v)
	}
	return out
}

// rangeParam reads name_min/name_max; a missing max collapses to min.
func (q *queryReader) rangeParam(name string) risk.Range {
	min := q.float(name+"_min", 0)
	max := q.float(name+"_max", min)
	return risk.Range{Min: min, Max: max}
}

func sequenceQuery(values url.Values) (app.SequenceRequest, error) {
	q := &queryReader{values: values}
	req := app.SequenceRequest{
		AssetValue:        q.float("asset_value", 0),
		EF:                q.rangeParam("ef"),
		ARO:               q.rangeParam("aro"),
		CostAdjustment:    q.rangeParam("cost_adjustment"),
		ControlCosts:      q.floats("control_costs"),
		ControlReductions: q.floats("control_reductions"),
		SampleCount:       int(q.float("num_samples", 0)),
		Kurtosis:          q.float("kurtosis", 0),
		Seed:              int64(q.float("seed", 0)),
	}
	return req, q.err
}

func vendorQuery(values url.Values) (app.VendorRequest, error) {
	q := &queryReader{values: values}
	req := app.VendorRequest{
		AssetValue:   q.float("asset_value", 0),
		EF:           q.rangeParam("ef"),
		ARO:          q.rangeParam("aro"),
		ControlCosts: q.floats("control_costs"),
		SampleCount:  int(q.float("num_samples", 0)),
		Kurtosis:     q.float("kurtosis", 0),
		Seed:         int64(q.float("seed", 0)),
	}
	mins := q.floats("control_reduction_mins")
	maxs := q.floats("control_reduction_maxs")
	if q.err != nil {
		return req, q.err
	}
	if len(mins) != len(maxs) {
		return req, fmt.Errorf("control_reduction_mins and control_reduction_maxs differ in length: %d vs %d", len(mins), len(maxs))
	}
	req.ReductionRanges = make([]risk.Range, len(mins))
	for i := range mins {
		req.ReductionRanges[i] = risk.Range{Min: mins[i], Max: maxs[i]}
	}
	return req, q.err
}
