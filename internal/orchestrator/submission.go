package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/dataset"
	"github.com/hydroclim/climgen/internal/job"
)

// writeSubmissionScript emits the top-level shell script that submits every
// job with qsub, wiring scheduler-level ordering through
// `-W depend=afterok:` clauses. Each job's statement textually follows the
// statements of all of its dependencies, established by a depth-first walk
// over the job graph. Job dependency edges are a subset of the already
// validated processor edges, so cycles are not expected here; the walk
// still guards against infinite recursion.
func (o *Orchestrator) writeSubmissionScript(ctx context.Context, ds dataset.Dataset, jobs []*job.Job, cleanup *job.Job) (string, error) {
	logger := ctxlog.FromContext(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "#!/bin/bash\n# Submission script for dataset %q. Generated by climgen.\nset -e\n\n", ds.Name())
	b.WriteString("declare -A JOB_IDS\nALL_IDS=\"\"\n\n")

	emitted := make(map[*job.Job]bool)
	onStack := make(map[*job.Job]bool)

	var emit func(j *job.Job) error
	emit = func(j *job.Job) error {
		if emitted[j] {
			return nil
		}
		if onStack[j] {
			return fmt.Errorf("internal error: job dependency cycle involving %q", j.Name)
		}
		onStack[j] = true
		for _, dep := range j.Dependencies {
			if err := emit(dep); err != nil {
				return err
			}
		}
		delete(onStack, j)
		emitted[j] = true

		if len(j.Dependencies) == 0 {
			fmt.Fprintf(&b, "JOB_IDS[%s]=$(qsub %s)\n", j.Name, j.ScriptPath)
		} else {
			ids := make([]string, 0, len(j.Dependencies))
			for _, dep := range j.Dependencies {
				ids = append(ids, fmt.Sprintf("${JOB_IDS[%s]}", dep.Name))
			}
			fmt.Fprintf(&b, "JOB_IDS[%s]=$(qsub -W depend=afterok:%s %s)\n",
				j.Name, strings.Join(ids, ":"), j.ScriptPath)
		}
		fmt.Fprintf(&b, "ALL_IDS=\"${ALL_IDS}:${JOB_IDS[%s]}\"\n\n", j.Name)
		return nil
	}

	for _, j := range jobs {
		if err := emit(j); err != nil {
			return "", err
		}
	}

	// The cleanup job waits for every submitted job, not just the leaves,
	// so a failed intermediate job also blocks cleanup.
	fmt.Fprintf(&b, "qsub -W depend=afterok:${ALL_IDS#:} %s\n", cleanup.ScriptPath)

	path := filepath.Join(o.scripts.Dir(), fmt.Sprintf("submit_%s.sh", ds.Name()))
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return "", fmt.Errorf("writing submission script %s: %w", path, err)
	}
	logger.Debug("Submission script written.", "path", path)
	return path, nil
}
