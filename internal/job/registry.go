package job

import (
	"fmt"

	"github.com/hydroclim/climgen/internal/format"
)

// UnresolvedDependencyError reports a registry lookup for a format no
// registered job produces. The processor sorter guarantees producers run
// before consumers, so hitting this during generation indicates an internal
// consistency bug rather than a recoverable condition.
type UnresolvedDependencyError struct {
	Format format.Format
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("no job found for dependency: %s", e.Format)
}

// Registry is the append-only collection of jobs created during one
// generation run. It is written by the orchestrator between processor
// invocations and read by whichever processor is currently creating jobs;
// generation is strictly sequential, so the registry is not (and need not
// be) safe for concurrent use.
type Registry struct {
	jobs []*Job
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends jobs to the registry in order. No validation or deduplication
// is performed; if two jobs produce the same format, JobFor resolves to the
// one registered first.
func (r *Registry) Add(jobs ...*Job) {
	r.jobs = append(r.jobs, jobs...)
}

// Jobs returns all registered jobs in insertion order. The returned slice is
// a copy; callers may not mutate registry state through it.
func (r *Registry) Jobs() []*Job {
	out := make([]*Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// JobFor returns the first registered job whose output equals f. First match
// wins: later jobs producing the same format are never returned.
func (r *Registry) JobFor(f format.Format) (*Job, error) {
	for _, j := range r.jobs {
		if j.Output == f {
			return j, nil
		}
	}
	return nil, &UnresolvedDependencyError{Format: f}
}
