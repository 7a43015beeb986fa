// Package domain contains the core domain models and business logic for the task dependency graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of tasks.
// Edges are derived from file_dep and targets by Link.
type Graph struct {
	root           string
	tasks          map[InternedString]Task
	order          []InternedString
	producers      map[InternedString]InternedString
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:      make(map[InternedString]Task),
		producers:  make(map[InternedString]InternedString),
		dependents: make(map[InternedString][]InternedString),
	}
}

// SetRoot sets the directory tasks run in.
func (g *Graph) SetRoot(root string) {
	g.root = root
}

// Root returns the directory tasks run in.
func (g *Graph) Root() string {
	return g.root
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "cannot add task"), "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	g.order = append(g.order, t.Name)
	return nil
}

// Link derives every task's Dependencies from the producers of its inputs.
// Inputs without a producer are source files. Two tasks producing the same target is an error.
func (g *Graph) Link() error {
	g.producers = make(map[InternedString]InternedString, len(g.tasks))
	for _, name := range g.order {
		for _, out := range g.tasks[name].Outputs {
			if prev, ok := g.producers[out]; ok && prev != name {
				err := zerr.With(zerr.Wrap(ErrDuplicateTarget, "cannot link graph"), "target", out.String())
				err = zerr.With(err, "first", prev.String())
				return zerr.With(err, "second", name.String())
			}
			g.producers[out] = name
		}
	}

	g.dependents = make(map[InternedString][]InternedString, len(g.tasks))
	for _, name := range g.order {
		t := g.tasks[name]
		deps := make([]InternedString, 0, len(t.Inputs))
		for _, in := range t.Inputs {
			p, ok := g.producers[in]
			if !ok || p == name || slices.Contains(deps, p) {
				continue
			}
			deps = append(deps, p)
			g.dependents[p] = append(g.dependents[p], name)
		}
		t.Dependencies = deps
		g.tasks[name] = t
	}
	return nil
}

// Validate checks for cycles in the graph using a topological sort.
// It populates the execution order if successful. Ties follow insertion order.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "invalid graph"), "dependency", u.String())
		}

		for _, dep := range task.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := slices.Index(path, dep)
	names := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		names = append(names, node.String())
	}
	names = append(names, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid graph"), "cycle", strings.Join(names, " -> "))
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// GetTask returns the task with the given name.
func (g *Graph) GetTask(name InternedString) (Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// Producer returns the task that declares path as a target.
func (g *Graph) Producer(path string) (InternedString, bool) {
	p, ok := g.producers[NewInternedString(path)]
	return p, ok
}

// Dependents returns the tasks that depend on the named task.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// ModuleTasks returns the names of every task emitted for module, in insertion order.
func (g *Graph) ModuleTasks(module string) []InternedString {
	m := NewInternedString(module)
	var out []InternedString
	for _, name := range g.order {
		if g.tasks[name].Module == m {
			out = append(out, name)
		}
	}
	return out
}
