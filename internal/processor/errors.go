package processor

import (
	"fmt"

	"github.com/hydroclim/climgen/internal/format"
)

// DuplicateProducerError reports that two or more processors claim to
// produce the same format, via output or intermediate output.
type DuplicateProducerError struct {
	Format format.Format
}

func (e *DuplicateProducerError) Error() string {
	return fmt.Sprintf("multiple processors produce %s", e.Format)
}

// MissingProducerError reports a declared dependency format that no
// processor in the set produces.
type MissingProducerError struct {
	Dependent format.Format
	Missing   format.Format
}

func (e *MissingProducerError) Error() string {
	return fmt.Sprintf("processor for %s depends on %s, which is not produced by any processor",
		e.Dependent, e.Missing)
}

// CycleError reports a cycle in the processor dependency graph, naming one
// format whose producer is involved in the cycle.
type CycleError struct {
	Format format.Format
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency involving processor for %s", e.Format)
}
