package dependency

import (
	"fmt"
	"testing"
)

var flattenTests = [...]struct {
	edges   []string
	ordered []string
}{
	{
		edges: []string{
			"Book -> Item",
			"Library -> Book",
			"Library -> Magazine",
			"Magazine -> Item",
		},
		ordered: []string{
			"Item",
			"Book",
			"Magazine",
			"Library",
		},
	},
	{
		// Targets keep first-registration order, so flattening is
		// stable for equal graphs built in the same order.
		edges: []string{
			"Library -> Book",
			"Book -> Item",
			"Library -> Magazine",
			"Magazine -> Item",
		},
		ordered: []string{
			"Item",
			"Book",
			"Magazine",
			"Library",
		},
	},
	{
		// Loops are not followed
		edges: []string{
			"Mildred -> Yancy",
			"Mrs -> Junior",
			"Mrs -> Phillip",
			"Phillip -> Yancy",
			"Yancy -> Junior",
			"Yancy -> Phillip",
		},
		ordered: []string{
			"Junior",
			"Phillip",
			"Yancy",
			"Mildred",
			"Mrs",
		},
	},
}

func TestFlatten(t *testing.T) {
	for _, tt := range flattenTests {
		var graph Graph
		for _, edge := range tt.edges {
			var target string
			var dep string
			if _, err := fmt.Sscanf(edge, "%s -> %s", &target, &dep); err != nil {
				panic("bad test edge " + edge)
			}
			graph.Add(target, dep)
		}
		var i int
		graph.Flatten(func(vertex string) {
			if i >= len(tt.ordered) {
				t.Fatalf("advanced past expected output with %s", vertex)
			}
			if tt.ordered[i] != vertex {
				t.Errorf("got %q, wanted %q", vertex, tt.ordered[i])
			} else {
				t.Log(vertex)
			}
			i++
		})
	}
}

func TestAddWithoutDeps(t *testing.T) {
	var graph Graph
	graph.Add("lonely")
	graph.Add("pair", "lonely")
	if graph.Len() != 2 {
		t.Fatalf("Len = %d, wanted 2", graph.Len())
	}
	var got []string
	graph.Flatten(func(v string) { got = append(got, v) })
	if len(got) != 2 || got[0] != "lonely" || got[1] != "pair" {
		t.Errorf("got %v, a dependency-free target must still be emitted", got)
	}
}
