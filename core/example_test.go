package core_test

import (
	"fmt"

	"github.com/katalvlaran/tgraph/core"
)

// ExampleGraph_RemoveVertex shows that deletion only closes the interval.
func ExampleGraph_RemoveVertex() {
	g := core.NewGraph()
	_ = g.AddVertex(1, 0, core.Infinity)
	_ = g.AddVertex(2, 0, core.Infinity)
	_ = g.AddEdge(1, 2, 0, core.Infinity)

	_ = g.RemoveVertex(2, 5)

	v, ok := g.Vertex(2)
	fmt.Println(ok, v, v.Contains(4), v.Contains(5))
	fmt.Print(g)
	// Output:
	// true 2[0,5) true false
	// 1	0	inf	2	0	inf
	// 2	0	5
}

// ExampleGraph_View walks a stable snapshot in ascending ID order.
func ExampleGraph_View() {
	g := core.NewGraph()
	for _, id := range []core.VertexID{3, 1, 2} {
		_ = g.AddVertex(id, core.Time(id), core.Infinity)
	}

	_ = g.View(func(s core.Snapshot) error {
		s.Range(func(v core.Vertex) bool {
			fmt.Println(v)
			return true
		})
		return nil
	})
	// Output:
	// 1[1,inf)
	// 2[2,inf)
	// 3[3,inf)
}
