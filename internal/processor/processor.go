// Package processor defines the unit of domain logic that turns a declared
// climate variable into concrete batch jobs, the topological sorter that
// orders processors by their format dependencies, and the concrete processor
// variants the dataset layer assembles from a plan.
package processor

import (
	"context"
	"fmt"

	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/job"
	"github.com/hydroclim/climgen/internal/paths"
	"github.com/hydroclim/climgen/internal/scripts"
	"github.com/hydroclim/climgen/internal/units"
)

// Dataset is the narrow view of a dataset that processors need while
// creating jobs. The dataset package provides the full implementation.
type Dataset interface {
	// Name identifies the dataset; it prefixes job and artifact names.
	Name() string
	// SourceDir is the directory holding the dataset's raw input files.
	SourceDir() string
}

// Processor declares one target variable, the format it ultimately outputs,
// any intermediate formats it produces as a byproduct, and the formats it
// requires as input. Given a dataset and a creation context it produces one
// or more concrete jobs.
type Processor interface {
	TargetVariable() format.Variable

	// OutputFormat is the single format this processor ultimately produces.
	OutputFormat() format.Format

	// IntermediateOutputs lists formats also produced as byproducts. They
	// participate in producer uniqueness and dependency resolution during
	// sorting, but jobs for them only enter the registry once created.
	IntermediateOutputs() []format.Format

	// Dependencies lists the formats this processor requires as input.
	Dependencies() []format.Format

	// CreateJobs generates the processor's jobs, resolving each declared
	// dependency through the registry in the creation context. It must only
	// be called after every producer of its dependencies has run.
	CreateJobs(ctx context.Context, ds Dataset, jc *Context) ([]*job.Job, error)
}

// Context is the shared creation context passed to every processor during
// the orchestrator's ordered pass.
type Context struct {
	Registry *job.Registry
	Paths    *paths.Manager
	Units    *units.Table
	Scripts  *scripts.Writer
}

// jobName builds the run-unique job name for a dataset, variable and stage.
func jobName(dataset string, v format.Variable, stage format.Stage) string {
	return fmt.Sprintf("%s_%s_%s", dataset, v, stage)
}
