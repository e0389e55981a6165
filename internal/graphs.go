// This file contains thin wrappers around the graph module
// for managing graph structures in the tournament data.
package internal

import (
	"cmp"
	"errors"
	"iter"
	"slices"

	"github.com/dominikbraun/graph"
)

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

// A DependencyGraph is a directed acyclic graph where an edge
// from a source to a target means the target depends on the
// outcome of the source.
type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
	predecessorMap map[int]map[int]graph.Edge[int]
}

func NewDependencyGraph[T GraphNode]() *DependencyGraph[T] {
	g := graph.New(getNodeId[T], graph.Directed(), graph.Acyclic(), graph.PreventCycles())
	return &DependencyGraph[T]{Graph: g}
}

// Adds the node unless a node with the same ID is already present
func (g *DependencyGraph[T]) AddNode(node T) error {
	err := g.Graph.AddVertex(node)
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return nil
	}
	g.invalidate()
	return err
}

// Adds an edge from source to target. Missing nodes are added.
func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	if err := g.AddNode(source); err != nil {
		return err
	}
	if err := g.AddNode(target); err != nil {
		return err
	}
	err := g.Graph.AddEdge(source.Id(), target.Id())
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return nil
	}
	g.invalidate()
	return err
}

func (g *DependencyGraph[T]) invalidate() {
	g.predecessorMap = nil
}

func (g *DependencyGraph[T]) BreadthSearchIter(start T) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start.Id(), visitor)
	}
	return iterator
}

// Returns the nodes that are on the incoming edges of the given
// target node (the dependencies) ordered by ID.
func (g *DependencyGraph[T]) GetDependencies(target T) []T {
	if g.predecessorMap == nil {
		g.predecessorMap, _ = g.Graph.PredecessorMap()
	}
	return g.collect(edgeKeys(g.predecessorMap[target.Id()]))
}

func edgeKeys(edges map[int]graph.Edge[int]) []int {
	keys := make([]int, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	return keys
}

func (g *DependencyGraph[T]) collect(keys []int) []T {
	slices.Sort(keys)

	nodes := make([]T, 0, len(keys))
	for _, k := range keys {
		node, _ := g.Vertex(k)
		nodes = append(nodes, node)
	}
	return nodes
}

// Returns all nodes such that every node comes after the nodes
// it depends on. Ties are ordered by ID.
func (g *DependencyGraph[T]) TopologicalOrder() ([]T, error) {
	less := func(a, b int) bool { return cmp.Less(a, b) }
	keys, err := graph.StableTopologicalSort(g.Graph, less)
	if err != nil {
		return nil, err
	}

	nodes := make([]T, 0, len(keys))
	for _, k := range keys {
		node, _ := g.Vertex(k)
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Returns the nodes without dependencies ordered by ID
func (g *DependencyGraph[T]) Roots() []T {
	if g.predecessorMap == nil {
		g.predecessorMap, _ = g.Graph.PredecessorMap()
	}
	roots := make([]int, 0, 4)
	for k, in := range g.predecessorMap {
		if len(in) == 0 {
			roots = append(roots, k)
		}
	}
	return g.collect(roots)
}
