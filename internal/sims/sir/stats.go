package sir

// PopulationStats tallies cells by state.
type PopulationStats struct {
	Susceptible int
	Infected    int
	Recovered   int
}

// Total returns the number of cells counted.
func (s PopulationStats) Total() int {
	return s.Susceptible + s.Infected + s.Recovered
}

// Count returns the tally for one state.
func (s PopulationStats) Count(state HealthState) int {
	switch state {
	case Susceptible:
		return s.Susceptible
	case Infected:
		return s.Infected
	case Recovered:
		return s.Recovered
	}
	return 0
}

// Fraction returns the share of cells in state, or zero for an empty tally.
func (s PopulationStats) Fraction(state HealthState) float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Count(state)) / float64(total)
}

// CountStates scans g once and tallies every cell.
func CountStates(g *Grid) PopulationStats {
	var counts [NumStates]int
	for i := 0; i < g.Len(); i++ {
		counts[g.Read(i)]++
	}
	return PopulationStats{
		Susceptible: counts[Susceptible],
		Infected:    counts[Infected],
		Recovered:   counts[Recovered],
	}
}
