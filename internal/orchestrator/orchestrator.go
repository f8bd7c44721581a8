// Package orchestrator drives a generation run: it sorts a dataset's
// processors, creates their jobs in dependency order while registering each
// batch for downstream resolution, and emits the top-level submission
// script that chains the jobs on the batch scheduler.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/dataset"
	"github.com/hydroclim/climgen/internal/job"
	"github.com/hydroclim/climgen/internal/paths"
	"github.com/hydroclim/climgen/internal/processor"
	"github.com/hydroclim/climgen/internal/scripts"
	"github.com/hydroclim/climgen/internal/units"
)

// Orchestrator generates submission scripts for datasets. It is stateless
// between runs; each Generate call uses a fresh job registry.
type Orchestrator struct {
	paths   *paths.Manager
	units   *units.Table
	scripts *scripts.Writer
}

// New creates an Orchestrator from its collaborators.
func New(pm *paths.Manager, ut *units.Table, sw *scripts.Writer) *Orchestrator {
	return &Orchestrator{paths: pm, units: ut, scripts: sw}
}

// Generate produces every job script for the dataset and returns the path
// of the top-level submission script. Any sorting or job-creation failure
// aborts the run; partially written job scripts may remain on disk but no
// submission script is produced.
func (o *Orchestrator) Generate(ctx context.Context, ds dataset.Dataset) (string, error) {
	logger := ctxlog.FromContext(ctx)

	procs, err := ds.Processors(ctx)
	if err != nil {
		return "", err
	}

	sorted, err := processor.Sort(procs)
	if err != nil {
		return "", err
	}
	logger.Debug("Processors sorted.", "dataset", ds.Name(), "count", len(sorted))

	registry := job.NewRegistry()
	jc := &processor.Context{
		Registry: registry,
		Paths:    o.paths,
		Units:    o.units,
		Scripts:  o.scripts,
	}

	// Register each batch before the next processor runs: the sort order
	// guarantees every producer's jobs are in the registry before any
	// consumer resolves them.
	for _, p := range sorted {
		jobs, err := p.CreateJobs(ctx, ds, jc)
		if err != nil {
			return "", fmt.Errorf("creating jobs for %s: %w", p.OutputFormat(), err)
		}
		registry.Add(jobs...)
		logger.Debug("Jobs registered.", "processor", p.OutputFormat().String(), "count", len(jobs))
	}

	all := registry.Jobs()
	cleanup, err := o.cleanupJob(ctx, ds, all)
	if err != nil {
		return "", err
	}

	path, err := o.writeSubmissionScript(ctx, ds, all, cleanup)
	if err != nil {
		return "", err
	}
	logger.Info("Submission script generated.", "dataset", ds.Name(), "jobs", len(all)+1, "path", path)
	return path, nil
}

// cleanupJob creates the synthetic trailing job that removes intermediate
// artifacts. It depends on every other job in the run.
func (o *Orchestrator) cleanupJob(ctx context.Context, ds dataset.Dataset, all []*job.Job) (*job.Job, error) {
	name := fmt.Sprintf("%s_cleanup", ds.Name())
	script, err := o.scripts.WriteCleanupScript(ctx, name, o.paths.WorkDir())
	if err != nil {
		return nil, err
	}
	return &job.Job{
		Name:         name,
		ScriptPath:   script,
		Dependencies: all,
	}, nil
}
