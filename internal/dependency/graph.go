// Package dependency builds and flattens dependency graphs.
package dependency

// A Graph is a collection of named targets and their dependencies.
// Targets keep the order they were first added in, so flattening the
// same graph always produces the same order.
type Graph struct {
	targets []string
	nodes   map[string][]string
	known   map[string]bool
}

// Len returns the number of targets in the graph.
func (g *Graph) Len() int {
	return len(g.targets)
}

func (g *Graph) init() {
	if g.nodes == nil {
		g.nodes = make(map[string][]string)
		g.known = make(map[string]bool)
	}
}

// Add registers a target along with zero or more of its dependencies.
// Registering a target with no dependencies still makes it part of the
// flattened output.
func (g *Graph) Add(target string, deps ...string) {
	g.init()
	if !g.known[target] {
		g.known[target] = true
		g.targets = append(g.targets, target)
	}
	for _, dep := range deps {
		present := false
		for _, have := range g.nodes[target] {
			if have == dep {
				present = true
				break
			}
		}
		if !present {
			g.nodes[target] = append(g.nodes[target], dep)
		}
	}
}

// Flatten calls walk on each vertex of the Graph in topological order,
// dependencies before dependents. Every vertex is visited exactly
// once; cycles are not followed, so the first-encountered member of a
// cycle is emitted before the vertices that reference it.
func (g *Graph) Flatten(walk func(string)) {
	g.init()
	visited := make(map[string]bool, len(g.targets))
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range g.nodes[name] {
			visit(dep)
		}
		walk(name)
	}
	for _, tgt := range g.targets {
		visit(tgt)
	}
}
