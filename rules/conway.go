package rules

// Neighbour counts of the classic B3/S23 rule.
const (
	BirthCount   = 3
	SurviveMin   = 2
	SurviveMax   = 3
	MaxNeighbors = 8
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A living cell survives with 2 or 3 living neighbors; a dead cell is born with exactly 3.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == BirthCount
}
