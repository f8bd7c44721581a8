// Package scripts writes the per-job batch scripts that processors generate.
// The planner records only the returned paths; script content is opaque to
// the dependency engine.
package scripts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/pbs"
)

// Writer writes job scripts into a run-scoped directory with a shared PBS
// header.
type Writer struct {
	dir string
	pbs pbs.Options
}

// NewWriter returns a Writer that places scripts under dir.
func NewWriter(dir string, opts pbs.Options) *Writer {
	return &Writer{dir: dir, pbs: opts}
}

// Dir returns the directory scripts are written into.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteJobScript writes <dir>/<name>.pbs containing the PBS header followed
// by the given commands, and returns the script path. The script fails fast:
// any command that exits non-zero aborts the job.
func (w *Writer) WriteJobScript(ctx context.Context, name string, commands []string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating script directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	for _, d := range w.pbs.Directives(name) {
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("\nset -e\n\n")
	for _, c := range commands {
		b.WriteString(c)
		b.WriteString("\n")
	}

	path := filepath.Join(w.dir, name+".pbs")
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return "", fmt.Errorf("writing job script %s: %w", path, err)
	}
	logger.Debug("Job script written.", "name", name, "path", path)
	return path, nil
}

// WriteCleanupScript writes the trailing cleanup job script, which removes
// the intermediate artifacts accumulated in the work directory.
func (w *Writer) WriteCleanupScript(ctx context.Context, name, workDir string) (string, error) {
	commands := []string{
		fmt.Sprintf("rm -f %s/*.nc", workDir),
	}
	return w.WriteJobScript(ctx, name, commands)
}
