package hlkit

// ComputeLineStates scans the whole document and returns the region state
// at the start of each line. Entry i feeds [LanguageDefinition.TokenizeLine]
// for line i.
//
// Region state is an inherently sequential dependency: line i+1's starting
// state is line i's outcome, so this is a single forward pass. For
// incremental recomputation after edits, use [Session], which stops the
// forward pass at convergence instead of rescanning to the end.
func (d *LanguageDefinition) ComputeLineStates(lines []string) []RegionState {
	states := make([]RegionState, len(lines))

	st := RegionState{}
	for i, line := range lines {
		states[i] = st
		_, st = d.tokenizeBytes(line, st)
	}

	return states
}
