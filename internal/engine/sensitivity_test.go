package engine

import (
	"math"
	"testing"

	"gorosi/domain/risk"
)

func TestSensitivityEmptyProblem(t *testing.T) {
	problem := risk.Partition([]risk.Parameter{
		risk.FixedParam("a", 3),
		risk.FixedParam("b", 7),
	})
	result, err := Sensitivity(problem, 256, 42, func(p map[string]float64) float64 {
		return p["a"] + p["b"]
	})
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("all-fixed problem: got %d indices, want 0", len(result))
	}
}

func TestSensitivitySingleParameterExplainsAllVariance(t *testing.T) {
	problem := risk.Partition([]risk.Parameter{
		risk.VaryingParam("x", risk.Range{Min: 0, Max: 10}),
		risk.FixedParam("c", 5),
	})
	result, err := Sensitivity(problem, 1024, 42, func(p map[string]float64) float64 {
		return 3*p["x"] + p["c"]
	})
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}
	idx, ok := result["x"]
	if !ok {
		t.Fatalf("missing index for x; got %v", result)
	}
	if math.Abs(idx.S1-1) > 0.05 {
		t.Errorf("S1 = %v, want ~1 for the only varying parameter", idx.S1)
	}
	if math.Abs(idx.ST-1) > 0.05 {
		t.Errorf("ST = %v, want ~1 for the only varying parameter", idx.ST)
	}
	if _, leaked := result["c"]; leaked {
		t.Errorf("fixed parameter c received a sensitivity index")
	}
}

func TestSensitivityRanksAdditiveContributions(t *testing.T) {
	// y = 10*a + b over unit ranges: a contributes 100x the variance of
	// b, and an additive model has S1 ~ ST per parameter.
	problem := risk.Partition([]risk.Parameter{
		risk.VaryingParam("a", risk.Range{Min: 0, Max: 1}),
		risk.VaryingParam("b", risk.Range{Min: 0, Max: 1}),
	})
	result, err := Sensitivity(problem, 2048, 42, func(p map[string]float64) float64 {
		return 10*p["a"] + p["b"]
	})
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}

	a, b := result["a"], result["b"]
	if a.S1 <= b.S1 {
		t.Errorf("S1: dominant parameter not ranked first: a=%v b=%v", a.S1, b.S1)
	}
	if a.S1 < 0.9 {
		t.Errorf("S1(a) = %v, want ~0.99", a.S1)
	}
	if b.S1 > 0.1 {
		t.Errorf("S1(b) = %v, want ~0.01", b.S1)
	}
	if math.Abs(a.S1-a.ST) > 0.1 {
		t.Errorf("additive model: S1(a)=%v and ST(a)=%v should agree", a.S1, a.ST)
	}
}

func TestSensitivityConfidenceIntervalsNonNegative(t *testing.T) {
	problem := risk.Partition([]risk.Parameter{
		risk.VaryingParam("a", risk.Range{Min: 0, Max: 1}),
		risk.VaryingParam("b", risk.Range{Min: 0, Max: 1}),
	})
	result, err := Sensitivity(problem, 512, 42, func(p map[string]float64) float64 {
		return p["a"] * p["b"]
	})
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}
	for name, idx := range result {
		if idx.S1Conf < 0 || idx.STConf < 0 {
			t.Errorf("%s: negative confidence interval: %+v", name, idx)
		}
	}
}

func TestSensitivityDeterministic(t *testing.T) {
	problem := risk.Partition([]risk.Parameter{
		risk.VaryingParam("a", risk.Range{Min: 0, Max: 1}),
		risk.VaryingParam("b", risk.Range{Min: 2, Max: 4}),
	})
	model := func(p map[string]float64) float64 {
		return p["a"]*p["b"] + p["b"]
	}

	first, err := Sensitivity(problem, 512, 7, model)
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}
	second, err := Sensitivity(problem, 512, 7, model)
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}
	for name, idx := range first {
		if second[name] != idx {
			t.Errorf("%s: reruns disagree: %+v vs %+v", name, idx, second[name])
		}
	}
}

func TestALEAndROSI(t *testing.T) {
	approx(t, "ALE", ALE(100_000, 0.5, 1), 50_000)
	approx(t, "ROSI", ROSI(50_000, 25_000, 1000), 2400)
	approx(t, "negative ROSI", ROSI(10_000, 9_500, 1000), -50)
}
