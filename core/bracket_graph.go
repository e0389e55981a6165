package core

import "github.com/ezBadminton/gocup/internal"

// The dependency graph of the bracket positions. An edge points
// from a match to the match its winner advances to.
//
// The graph is built once and only read afterwards.
var bracketGraph = buildBracketGraph()

// All bracket positions in play order
var bracketPositions = bracketPlayOrder()

// The positions seeded from the standings
var seededPositions = bracketGraph.Roots()

func buildBracketGraph() *internal.DependencyGraph[Position] {
	g := internal.NewDependencyGraph[Position]()
	for source, f := range slotMap {
		if err := g.AddEdge(source, f.target); err != nil {
			panic(err)
		}
	}

	// Fill the lazy predecessor cache now so concurrent readers
	// never write to it
	g.GetDependencies(Position{Final, 0})

	return g
}

func bracketPlayOrder() []Position {
	order, err := bracketGraph.TopologicalOrder()
	if err != nil {
		panic(err)
	}
	return order
}

// Returns the positions whose winners fill the slots of p
// ordered by side
func feederPositions(p Position) []Position {
	return bracketGraph.GetDependencies(p)
}

// Returns the positions after p on the way to the final
func pathToFinal(p Position) []Position {
	path := make([]Position, 0, 2)
	for node := range bracketGraph.BreadthSearchIter(p) {
		if node != p {
			path = append(path, node)
		}
	}
	return path
}
