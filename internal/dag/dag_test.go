// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestTopologicalSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  []string
	}{
		{name: "empty", want: nil},
		{name: "single node", nodes: []string{"A"}, want: []string{"A"}},
		{name: "no edges keeps insertion order", nodes: []string{"c", "a", "b"}, want: []string{"c", "a", "b"}},
		{
			name:  "linear chain",
			edges: [][2]string{{"A", "B"}, {"B", "C"}},
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "diamond",
			edges: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
			want:  []string{"A", "B", "C", "D"},
		},
		{
			// mod needs lib, which was listed after it; only lib moves.
			name:  "dependency pulled forward",
			nodes: []string{"vanilla", "mod", "other", "lib"},
			edges: [][2]string{{"lib", "mod"}},
			want:  []string{"vanilla", "other", "lib", "mod"},
		},
		{
			name:  "earliest ready node wins",
			nodes: []string{"x", "y", "z"},
			edges: [][2]string{{"z", "x"}},
			want:  []string{"y", "z", "x"},
		},
		{
			name:  "duplicate edges",
			edges: [][2]string{{"A", "B"}, {"A", "B"}},
			want:  []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New[string]()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			got, err := g.TopologicalSort()
			if err != nil {
				t.Fatalf("TopologicalSort() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("TopologicalSort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopologicalSort_Cycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		edges     [][2]int
		wantCycle []int
	}{
		{name: "self loop", edges: [][2]int{{1, 1}}, wantCycle: []int{1}},
		{name: "two nodes", edges: [][2]int{{1, 2}, {2, 1}}, wantCycle: []int{1, 2}},
		{
			name:      "cycle with free node and dependant",
			edges:     [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 1}, {3, 4}},
			wantCycle: []int{1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New[int]()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			_, err := g.TopologicalSort()
			var cycleErr *CycleError[int]
			if !errors.As(err, &cycleErr) {
				t.Fatalf("expected *CycleError, got %v", err)
			}
			if !errors.Is(err, ErrCycle) {
				t.Error("CycleError should unwrap to ErrCycle")
			}
			if !slices.Equal(cycleErr.Cycle, tt.wantCycle) {
				t.Errorf("Cycle = %v, want %v", cycleErr.Cycle, tt.wantCycle)
			}
		})
	}
}

func TestCycleError_Message(t *testing.T) {
	t.Parallel()

	err := &CycleError[string]{Cycle: []string{"a", "b"}}
	if got := err.Error(); got != "dependency cycle detected: a -> b" {
		t.Errorf("Error() = %q", got)
	}
	if !strings.Contains((&CycleError[int]{Cycle: []int{7}}).Error(), "7") {
		t.Error("numeric keys should be printed")
	}
}

func TestGraph_Len(t *testing.T) {
	t.Parallel()

	g := New[string]()
	g.AddNode("a")
	g.AddNode("a")
	g.AddEdge("a", "b")
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}
