package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/dataset"
	"github.com/hydroclim/climgen/internal/orchestrator"
	"github.com/hydroclim/climgen/internal/paths"
	"github.com/hydroclim/climgen/internal/pbs"
	"github.com/hydroclim/climgen/internal/scripts"
	"github.com/hydroclim/climgen/internal/units"
)

// Run generates job scripts and a submission script for every dataset in
// the plan, printing each submission script path to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	// Scripts land in a run-scoped directory so repeated invocations never
	// clobber each other.
	runID := uuid.NewString()[:8]
	scriptDir := filepath.Join(a.cfg.OutputDir, "run-"+runID)

	pbsOpts := pbs.OptionsFromEnv()
	if a.model.PBS != nil {
		pbsOpts = pbsOpts.Merge(pbs.Options{
			Queue:    a.model.PBS.Queue,
			Account:  a.model.PBS.Account,
			Walltime: a.model.PBS.Walltime,
			NCPUs:    a.model.PBS.NCPUs,
			Mem:      a.model.PBS.Mem,
		})
	}

	orch := orchestrator.New(
		paths.NewManager(a.cfg.WorkDir, a.cfg.OutputDir),
		units.DefaultTable(),
		scripts.NewWriter(scriptDir, pbsOpts),
	)

	for _, cfg := range a.model.Datasets {
		ds := dataset.FromConfig(cfg)
		path, err := orch.Generate(ctx, ds)
		if err != nil {
			return fmt.Errorf("generating submission for dataset %q: %w", cfg.Name, err)
		}
		fmt.Fprintln(a.outW, path)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
