package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/job"
)

// Mean derives a variable as the pointwise mean of other variables'
// timeseries artifacts, e.g. daily mean temperature from tasmin and tasmax.
type Mean struct {
	variable format.Variable
	inputs   []format.Variable
}

// NewMean returns the mean-of-inputs processor for a derived variable.
func NewMean(v format.Variable, inputs []format.Variable) *Mean {
	return &Mean{variable: v, inputs: inputs}
}

func (p *Mean) TargetVariable() format.Variable {
	return p.variable
}

func (p *Mean) OutputFormat() format.Format {
	return format.Format{Variable: p.variable, Stage: format.StageTimeseries}
}

func (p *Mean) IntermediateOutputs() []format.Format {
	return nil
}

func (p *Mean) Dependencies() []format.Format {
	deps := make([]format.Format, 0, len(p.inputs))
	for _, in := range p.inputs {
		deps = append(deps, format.Format{Variable: in, Stage: format.StageTimeseries})
	}
	return deps
}

// CreateJobs resolves every input's timeseries job through the registry and
// writes one ensemble-mean job script depending on all of them.
func (p *Mean) CreateJobs(ctx context.Context, ds Dataset, jc *Context) ([]*job.Job, error) {
	logger := ctxlog.FromContext(ctx)

	deps := make([]*job.Job, 0, len(p.inputs))
	inputs := make([]string, 0, len(p.inputs))
	for _, dep := range p.Dependencies() {
		upstream, err := jc.Registry.JobFor(dep)
		if err != nil {
			return nil, err
		}
		deps = append(deps, upstream)
		inputs = append(inputs, upstream.OutputPath)
	}

	out := jc.Paths.ArtifactPath(ds.Name(), p.variable, format.StageTimeseries, nil)
	name := jobName(ds.Name(), p.variable, format.StageTimeseries)
	commands := []string{
		"mkdir -p " + filepath.Dir(out),
		fmt.Sprintf("cdo -O ensmean %s %s", strings.Join(inputs, " "), out),
	}
	script, err := jc.Scripts.WriteJobScript(ctx, name, commands)
	if err != nil {
		return nil, err
	}
	logger.Debug("Mean job created.", "variable", p.variable, "inputs", len(inputs))

	return []*job.Job{{
		Name:         name,
		ScriptPath:   script,
		Output:       p.OutputFormat(),
		OutputPath:   out,
		Dependencies: deps,
	}}, nil
}
