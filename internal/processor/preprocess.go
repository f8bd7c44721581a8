package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/job"
)

// Preprocess regrids a variable's raw source files onto the dataset's
// target grid before any further processing. Its artifact lands in the work
// directory and is removed by the cleanup job.
type Preprocess struct {
	variable      format.Variable
	sourcePattern string
	grid          string
}

// NewPreprocess returns the remap processor for a variable. grid is a cdo
// grid description, e.g. "r720x360" or a path to a grid file.
func NewPreprocess(v format.Variable, sourcePattern, grid string) *Preprocess {
	return &Preprocess{variable: v, sourcePattern: sourcePattern, grid: grid}
}

func (p *Preprocess) TargetVariable() format.Variable {
	return p.variable
}

func (p *Preprocess) OutputFormat() format.Format {
	return format.Format{Variable: p.variable, Stage: format.StagePreprocessed}
}

func (p *Preprocess) IntermediateOutputs() []format.Format {
	return nil
}

func (p *Preprocess) Dependencies() []format.Format {
	return nil
}

// CreateJobs writes one remap job script and returns its job.
func (p *Preprocess) CreateJobs(ctx context.Context, ds Dataset, jc *Context) ([]*job.Job, error) {
	logger := ctxlog.FromContext(ctx)

	glob := jc.Paths.SourceGlob(ds.SourceDir(), p.sourcePattern)
	out := jc.Paths.ArtifactPath(ds.Name(), p.variable, format.StagePreprocessed, nil)
	name := jobName(ds.Name(), p.variable, format.StagePreprocessed)
	commands := []string{
		"mkdir -p " + filepath.Dir(out),
		fmt.Sprintf("cdo -O remapbil,%s -mergetime '%s' %s", p.grid, glob, out),
	}
	script, err := jc.Scripts.WriteJobScript(ctx, name, commands)
	if err != nil {
		return nil, err
	}
	logger.Debug("Preprocess job created.", "variable", p.variable, "output", out)

	return []*job.Job{{
		Name:       name,
		ScriptPath: script,
		Output:     p.OutputFormat(),
		OutputPath: out,
	}}, nil
}
