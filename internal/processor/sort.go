package processor

import (
	"github.com/hydroclim/climgen/internal/format"
)

// Sort orders processors so that every processor appears after all
// processors producing a format it depends on. The result order is a
// deterministic function of the input order for acyclic graphs: unvisited
// roots are taken in input order and processors are appended post-order,
// after all of their dependency processors.
//
// Sort fails with DuplicateProducerError when two processors claim the same
// format, MissingProducerError when a dependency has no producer, and
// CycleError when the dependency graph contains a cycle (including a
// processor depending on its own output). No partial result is returned.
func Sort(procs []Processor) ([]Processor, error) {
	// Map every produced format, output and intermediates alike, to its
	// producing processor's position in the input.
	producedBy := make(map[format.Format]int)
	for i, p := range procs {
		outputs := append([]format.Format{p.OutputFormat()}, p.IntermediateOutputs()...)
		for _, f := range outputs {
			if _, dup := producedBy[f]; dup {
				return nil, &DuplicateProducerError{Format: f}
			}
			producedBy[f] = i
		}
	}

	// Resolve each declared dependency to the producing processor.
	edges := make([][]int, len(procs))
	for i, p := range procs {
		for _, dep := range p.Dependencies() {
			producer, ok := producedBy[dep]
			if !ok {
				return nil, &MissingProducerError{
					Dependent: p.OutputFormat(),
					Missing:   dep,
				}
			}
			edges[i] = append(edges[i], producer)
		}
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make([]int, len(procs))
	sorted := make([]Processor, 0, len(procs))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visited:
			return nil
		case visiting:
			return &CycleError{Format: procs[i].OutputFormat()}
		}
		state[i] = visiting
		for _, dep := range edges[i] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[i] = visited
		sorted = append(sorted, procs[i])
		return nil
	}

	for i := range procs {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
