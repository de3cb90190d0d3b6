package engine

// ALE is the annualized loss expectancy: asset value x exposure factor x
// annual rate of occurrence.
func ALE(assetValue, exposureFactor, occurrenceRate float64) float64 {
	return assetValue * exposureFactor * occurrenceRate
}

// ROSI is the return on security investment in percent: the net benefit of
// the risk reduction relative to the control cost.
func ROSI(aleBefore, aleAfter, costOfControl float64) float64 {
	return ((aleBefore - aleAfter) - costOfControl) / costOfControl * 100
}
