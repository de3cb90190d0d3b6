package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorosi/domain/risk"
)

func doRequest(t *testing.T, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path+"?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	NewApp().Router().ServeHTTP(rec, req)
	return rec
}

func sequenceQueryValues() url.Values {
	return url.Values{
		"asset_value":        {"100000"},
		"ef_min":             {"0.5"},
		"ef_max":             {"0.5"},
		"aro_min":            {"1"},
		"aro_max":            {"1"},
		"control_costs":      {"1000,2000"},
		"control_reductions": {"0.5,0.3"},
		"num_samples":        {"16"},
	}
}

func vendorQueryValues() url.Values {
	return url.Values{
		"asset_value":            {"100000"},
		"ef_min":                 {"0.5"},
		"aro_min":                {"1"},
		"control_costs":          {"5000,500"},
		"control_reduction_mins": {"0.5,0.3"},
		"control_reduction_maxs": {"0.5,0.3"},
		"num_samples":            {"16"},
	}
}

func TestSequenceEndpoint(t *testing.T) {
	rec := doRequest(t, "/api/risk/sequence", sequenceQueryValues())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result risk.SequenceResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := result.Results.BestPermutation; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("best permutation = %v, want [1 2]", got)
	}
	if result.Results.BestROSI < 2674 || result.Results.BestROSI > 2676 {
		t.Errorf("best rosi = %v, want ~2675", result.Results.BestROSI)
	}
	if result.Fingerprint.IsEmpty() {
		t.Error("missing fingerprint")
	}
}

func TestSequenceEndpointRejectsInvalidScenario(t *testing.T) {
	query := sequenceQueryValues()
	query.Set("asset_value", "-5")
	rec := doRequest(t, "/api/risk/sequence", query)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "asset_value") {
		t.Errorf("error should name the field: %s", rec.Body.String())
	}
}

func TestSequenceEndpointRejectsMalformedNumber(t *testing.T) {
	query := sequenceQueryValues()
	query.Set("ef_min", "zero-point-five")
	rec := doRequest(t, "/api/risk/sequence", query)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestVendorsEndpoint(t *testing.T) {
	rec := doRequest(t, "/api/risk/vendors", vendorQueryValues())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result risk.VendorResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := result.Results.BestVendor; len(got) != 2 || got[0] != 2 {
		t.Errorf("best vendor ranking = %v, want vendor 2 first", got)
	}
	if got := result.Results.MostEffectiveVendor; len(got) != 2 || got[0] != 1 {
		t.Errorf("most effective ranking = %v, want vendor 1 first", got)
	}
}

func TestVendorsEndpointRejectsMismatchedRanges(t *testing.T) {
	query := vendorQueryValues()
	query.Set("control_reduction_maxs", "0.5")
	rec := doRequest(t, "/api/risk/vendors", query)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestSequenceReportEndpoint(t *testing.T) {
	rec := doRequest(t, "/api/risk/sequence/report", sequenceQueryValues())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Control Deployment Sequencing") {
		t.Errorf("report missing title:\n%s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, "/health", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
