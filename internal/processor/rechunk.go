package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/job"
)

// Rechunk wraps an inner processor and appends a rechunking stage to its
// output, producing a time-optimized artifact for analysis access patterns.
// It delegates the target variable and declared dependencies to the inner
// processor; the inner output becomes one of its intermediate outputs.
type Rechunk struct {
	inner Processor
}

// WithRechunk decorates a processor with a trailing rechunk stage.
func WithRechunk(inner Processor) *Rechunk {
	return &Rechunk{inner: inner}
}

func (p *Rechunk) TargetVariable() format.Variable {
	return p.inner.TargetVariable()
}

func (p *Rechunk) OutputFormat() format.Format {
	return format.Format{Variable: p.inner.TargetVariable(), Stage: format.StageRechunked}
}

func (p *Rechunk) IntermediateOutputs() []format.Format {
	return append(p.inner.IntermediateOutputs(), p.inner.OutputFormat())
}

func (p *Rechunk) Dependencies() []format.Format {
	return p.inner.Dependencies()
}

// CreateJobs runs the inner processor first, then appends one rechunk job
// depending on the job that produced the inner output. All inner jobs are
// returned alongside the new one so the registry sees every artifact.
func (p *Rechunk) CreateJobs(ctx context.Context, ds Dataset, jc *Context) ([]*job.Job, error) {
	logger := ctxlog.FromContext(ctx)

	jobs, err := p.inner.CreateJobs(ctx, ds, jc)
	if err != nil {
		return nil, err
	}

	var upstream *job.Job
	for _, j := range jobs {
		if j.Output == p.inner.OutputFormat() {
			upstream = j
			break
		}
	}
	if upstream == nil {
		return nil, fmt.Errorf("inner processor for %s produced no job for its own output", p.inner.OutputFormat())
	}

	out := jc.Paths.ArtifactPath(ds.Name(), p.TargetVariable(), format.StageRechunked, nil)
	name := jobName(ds.Name(), p.TargetVariable(), format.StageRechunked)
	commands := []string{
		"mkdir -p " + filepath.Dir(out),
		fmt.Sprintf("ncks -O -4 --cnk_plc=g3d --cnk_dmn time,512 --cnk_dmn lat,16 --cnk_dmn lon,16 %s %s",
			upstream.OutputPath, out),
	}
	script, err := jc.Scripts.WriteJobScript(ctx, name, commands)
	if err != nil {
		return nil, err
	}
	logger.Debug("Rechunk job created.", "variable", p.TargetVariable(), "output", out)

	return append(jobs, &job.Job{
		Name:         name,
		ScriptPath:   script,
		Output:       p.OutputFormat(),
		OutputPath:   out,
		Dependencies: []*job.Job{upstream},
	}), nil
}
