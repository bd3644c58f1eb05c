// SPDX-License-Identifier: MPL-2.0

// Package dag orders nodes of a directed graph so that every node comes after
// the nodes it depends on. It is used to propose a loading order in which every
// namespace loads after its dependencies.
package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrCycle is the sentinel error wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle detected")

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError[K comparable] struct {
		// Cycle lists the nodes left unordered, in insertion order. It contains
		// every cycle plus the nodes that depend on one.
		Cycle []K
	}

	// Graph is a directed graph for topological sorting. An edge from A to B
	// means A must come before B.
	Graph[K comparable] struct {
		// index gives each node its insertion position.
		index map[K]int
		nodes []K
		// out holds outgoing edges by insertion position.
		out [][]int
	}
)

func (e *CycleError[K]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, k := range e.Cycle {
		parts[i] = fmt.Sprint(k)
	}
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(parts, " -> "))
}

// Unwrap returns ErrCycle for errors.Is() compatibility.
func (e *CycleError[K]) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{index: make(map[K]int)}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph[K]) AddNode(k K) {
	g.add(k)
}

func (g *Graph[K]) add(k K) int {
	if i, ok := g.index[k]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[k] = i
	g.nodes = append(g.nodes, k)
	g.out = append(g.out, nil)
	return i
}

// AddEdge adds a directed edge from -> to, meaning "from" must come before "to".
// Both nodes are implicitly added if they don't exist.
func (g *Graph[K]) AddEdge(from, to K) {
	f, t := g.add(from), g.add(to)
	if !slices.Contains(g.out[f], t) {
		g.out[f] = append(g.out[f], t)
	}
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int { return len(g.nodes) }

// TopologicalSort orders the nodes with Kahn's algorithm. Whenever several
// nodes are ready, the one added first is emitted first, so a graph without
// edges comes back in insertion order and edges move as few nodes as
// possible. Returns *CycleError if the graph contains a cycle.
func (g *Graph[K]) TopologicalSort() ([]K, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make([]int, len(g.nodes))
	for _, targets := range g.out {
		for _, t := range targets {
			inDegree[t]++
		}
	}

	// ready stays sorted by insertion position.
	var ready []int
	for i, d := range inDegree {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	result := make([]K, 0, len(g.nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		result = append(result, g.nodes[n])

		for _, t := range g.out[n] {
			inDegree[t]--
			if inDegree[t] == 0 {
				pos, _ := slices.BinarySearch(ready, t)
				ready = slices.Insert(ready, pos, t)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycle []K
		for i, d := range inDegree {
			if d > 0 {
				cycle = append(cycle, g.nodes[i])
			}
		}
		return nil, &CycleError[K]{Cycle: cycle}
	}
	return result, nil
}
