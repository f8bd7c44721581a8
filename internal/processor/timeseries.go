package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/job"
	"github.com/hydroclim/climgen/internal/paths"
)

// Timeseries merges a variable's per-period source files into a single
// timeseries artifact with cdo, chaining in a unit-conversion operator when
// the plan requests one. When the variable has a preprocess step, the merge
// reads the preprocessed artifact instead of the raw sources.
type Timeseries struct {
	variable      format.Variable
	sourcePattern string
	unit          string
	convertTo     string
	preprocessed  bool
}

// NewTimeseries returns the merge processor for a variable. preprocessed
// marks that the variable's input is the (variable, preprocessed) artifact
// rather than the raw source files.
func NewTimeseries(v format.Variable, sourcePattern, unit, convertTo string, preprocessed bool) *Timeseries {
	return &Timeseries{
		variable:      v,
		sourcePattern: sourcePattern,
		unit:          unit,
		convertTo:     convertTo,
		preprocessed:  preprocessed,
	}
}

func (p *Timeseries) TargetVariable() format.Variable {
	return p.variable
}

func (p *Timeseries) OutputFormat() format.Format {
	return format.Format{Variable: p.variable, Stage: format.StageTimeseries}
}

func (p *Timeseries) IntermediateOutputs() []format.Format {
	return nil
}

func (p *Timeseries) Dependencies() []format.Format {
	if p.preprocessed {
		return []format.Format{{Variable: p.variable, Stage: format.StagePreprocessed}}
	}
	return nil
}

// CreateJobs writes one merge job script and returns its job.
func (p *Timeseries) CreateJobs(ctx context.Context, ds Dataset, jc *Context) ([]*job.Job, error) {
	logger := ctxlog.FromContext(ctx)

	var input string
	var deps []*job.Job
	var tr *paths.TimeRange
	if p.preprocessed {
		upstream, err := jc.Registry.JobFor(format.Format{Variable: p.variable, Stage: format.StagePreprocessed})
		if err != nil {
			return nil, err
		}
		input = upstream.OutputPath
		deps = append(deps, upstream)
	} else {
		glob := jc.Paths.SourceGlob(ds.SourceDir(), p.sourcePattern)
		input = fmt.Sprintf("'%s'", glob)
		// Source files may not exist at plan time; the time range in the
		// artifact name is best-effort.
		if matches, err := filepath.Glob(glob); err == nil {
			if r, ok := paths.RangeFromFiles(matches); ok {
				tr = &r
			}
		}
	}

	conv, err := jc.Units.Conversion(p.unit, p.convertTo)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", p.variable, err)
	}
	operator := "-mergetime"
	if conv != "" {
		operator = conv + " -mergetime"
	}

	out := jc.Paths.ArtifactPath(ds.Name(), p.variable, format.StageTimeseries, tr)
	name := jobName(ds.Name(), p.variable, format.StageTimeseries)
	commands := []string{
		"mkdir -p " + filepath.Dir(out),
		fmt.Sprintf("cdo -O %s %s %s", operator, input, out),
	}
	script, err := jc.Scripts.WriteJobScript(ctx, name, commands)
	if err != nil {
		return nil, err
	}
	logger.Debug("Timeseries job created.", "variable", p.variable, "output", out)

	return []*job.Job{{
		Name:         name,
		ScriptPath:   script,
		Output:       p.OutputFormat(),
		OutputPath:   out,
		Dependencies: deps,
	}}, nil
}
