// Package job defines the concrete unit of work produced by a processor: a
// generated batch script together with the artifact it produces and the jobs
// it must wait for. It also provides the run-scoped registry used to resolve
// declared format dependencies into already-created jobs.
package job

import (
	"github.com/hydroclim/climgen/internal/format"
)

// Job describes one already-generated unit of work. A Job is created exactly
// once, by exactly one processor invocation, and is never mutated afterward.
// It lives for the duration of a single generation run.
type Job struct {
	// Name is unique within one run and doubles as the script file stem and
	// the key of the submission script's job-id map.
	Name string

	// ScriptPath is where the generated batch script was written. The
	// planner treats it as opaque.
	ScriptPath string

	// Output is the single artifact this job produces.
	Output format.Format

	// OutputPath is the final artifact location, used only for diagnostics
	// and for wiring downstream command lines.
	OutputPath string

	// Dependencies are the upstream jobs this job must run after. Set at
	// creation time from already-resolved jobs, never mutated.
	Dependencies []*Job
}
