package risk

// Parameter is a named input that is either fixed to a point value or
// varying over a range. The sequencing, vendor, and sensitivity paths all
// branch on fixed-vs-varying; this type and Partition keep that branching
// in one place.
type Parameter struct {
	Name  string
	Range Range
}

// Fixed reports whether the parameter is a point value.
func (p Parameter) Fixed() bool {
	return p.Range.Fixed()
}

// FixedParam builds a parameter pinned to a single value.
func FixedParam(name string, value float64) Parameter {
	return Parameter{Name: name, Range: Point(value)}
}

// VaryingParam builds a parameter over a range. A degenerate range still
// yields a fixed parameter.
func VaryingParam(name string, r Range) Parameter {
	return Parameter{Name: name, Range: r}
}

// Problem is the reduced sampling problem left after pruning fixed
// parameters: the varying parameters in declaration order plus a
// constant-fill map for everything pruned.
type Problem struct {
	Varying   []Parameter
	Constants map[string]float64
}

// Partition splits a parameter set into a reduced sampling problem and a
// constant-fill map. Sequence dimensionality stays minimal: constants never
// consume a Sobol dimension.
func Partition(params []Parameter) Problem {
	problem := Problem{
		Constants: make(map[string]float64),
	}
	for _, p := range params {
		if p.Fixed() {
			problem.Constants[p.Name] = p.Range.Min
			continue
		}
		problem.Varying = append(problem.Varying, p)
	}
	return problem
}

// Dimensions returns the number of varying parameters.
func (p Problem) Dimensions() int {
	return len(p.Varying)
}

// Empty reports whether no parameter varies.
func (p Problem) Empty() bool {
	return len(p.Varying) == 0
}

// Names returns the varying parameter names in declaration order.
func (p Problem) Names() []string {
	names := make([]string, len(p.Varying))
	for i, v := range p.Varying {
		names[i] = v.Name
	}
	return names
}
