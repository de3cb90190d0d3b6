package risk

import (
	"strings"
	"testing"

	"gorosi/domain/core"
)

func validSequenceArgs() (float64, Range, Range, Range, []float64, []float64) {
	return 100000,
		Range{Min: 0.3, Max: 0.8},
		Range{Min: 0.5, Max: 2.0},
		Range{Min: -0.1, Max: 0.1},
		[]float64{1000, 2000},
		[]float64{0.5, 0.3}
}

func TestNewSequenceScenario_Valid(t *testing.T) {
	av, ef, aro, adj, costs, reds := validSequenceArgs()
	s, err := NewSequenceScenario(av, ef, aro, adj, costs, reds, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SampleCount != DefaultSampleCount {
		t.Errorf("expected default sample count %d, got %d", DefaultSampleCount, s.SampleCount)
	}
	if s.Kurtosis != DefaultKurtosis {
		t.Errorf("expected default kurtosis %g, got %g", DefaultKurtosis, s.Kurtosis)
	}
	if s.Seed != DefaultSeed {
		t.Errorf("expected default seed %d, got %d", DefaultSeed, s.Seed)
	}
	if s.NumControls() != 2 {
		t.Errorf("expected 2 controls, got %d", s.NumControls())
	}
}

func TestScenarioValidation_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *Scenario)
		field  string
	}{
		{"non-positive asset value", func(s *Scenario) { s.AssetValue = 0 }, "asset_value"},
		{"ef min above max", func(s *Scenario) { s.EF = Range{Min: 0.9, Max: 0.1} }, "ef_range"},
		{"ef outside unit interval", func(s *Scenario) { s.EF = Range{Min: 0.5, Max: 1.5} }, "ef_range"},
		{"aro not positive", func(s *Scenario) { s.ARO = Range{Min: 0, Max: 1} }, "aro_range"},
		{"cost adjustment below -1", func(s *Scenario) { s.CostAdjustment = Range{Min: -1.5, Max: 0} }, "cost_adjustment_range"},
		{"zero controls", func(s *Scenario) { s.Controls = nil }, "controls"},
		{"non-positive control cost", func(s *Scenario) { s.Controls[1].Cost = -5 }, "controls[1].cost"},
		{"reduction above cap", func(s *Scenario) { s.Controls[0].Reduction = Point(0.995) }, "controls[0].reduction"},
		{"negative sample count", func(s *Scenario) { s.SampleCount = -1 }, "sample_count"},
		{"kurtosis out of domain", func(s *Scenario) { s.Kurtosis = 4.0 }, "kurtosis"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			av, ef, aro, adj, costs, reds := validSequenceArgs()
			s, err := NewSequenceScenario(av, ef, aro, adj, costs, reds, 0, 0, 0)
			if err != nil {
				t.Fatalf("baseline scenario invalid: %v", err)
			}
			tc.mutate(s)
			err = s.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !core.IsScenarioError(err) {
				t.Errorf("error does not wrap ErrInvalidScenario: %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q does not name field %q", err.Error(), tc.field)
			}
		})
	}
}

func TestNewSequenceScenario_MismatchedLengths(t *testing.T) {
	av, ef, aro, adj, costs, _ := validSequenceArgs()
	_, err := NewSequenceScenario(av, ef, aro, adj, costs, []float64{0.5}, 0, 0, 0)
	if err == nil {
		t.Fatal("expected mismatched-length error")
	}
	if !core.IsScenarioError(err) {
		t.Errorf("error does not wrap ErrInvalidScenario: %v", err)
	}
}

func TestNewVendorScenario_Valid(t *testing.T) {
	s, err := NewVendorScenario(
		50000,
		Range{Min: 0.4, Max: 0.6},
		Range{Min: 1, Max: 3},
		[]float64{500, 5000},
		[]Range{{Min: 0.2, Max: 0.4}, {Min: 0.5, Max: 0.7}},
		1024, 1.7, 7,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.CostAdjustment.Fixed() {
		t.Error("vendor scenario should pin cost adjustment to zero")
	}
}

func TestPartition(t *testing.T) {
	params := []Parameter{
		VaryingParam("EF", Range{Min: 0.2, Max: 0.8}),
		VaryingParam("ARO", Point(1.5)),
		VaryingParam("cost_variance", Range{Min: -0.1, Max: 0.1}),
	}
	problem := Partition(params)
	if problem.Dimensions() != 2 {
		t.Fatalf("expected 2 varying dimensions, got %d", problem.Dimensions())
	}
	names := problem.Names()
	if names[0] != "EF" || names[1] != "cost_variance" {
		t.Errorf("unexpected varying names: %v", names)
	}
	if v, ok := problem.Constants["ARO"]; !ok || v != 1.5 {
		t.Errorf("expected ARO pinned to 1.5, got %v (present=%v)", v, ok)
	}
}

func TestPartition_AllFixed(t *testing.T) {
	problem := Partition([]Parameter{
		FixedParam("EF", 0.5),
		FixedParam("ARO", 1.0),
	})
	if !problem.Empty() {
		t.Error("expected empty problem when every parameter is fixed")
	}
	if len(problem.Constants) != 2 {
		t.Errorf("expected 2 constants, got %d", len(problem.Constants))
	}
}
